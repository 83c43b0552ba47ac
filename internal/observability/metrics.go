// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	EventsTracked *prometheus.CounterVec
	ClicksTracked prometheus.Counter

	// Social proof metrics
	ProofRequests    prometheus.Counter
	WidgetsGenerated prometheus.Histogram

	// Pricing metrics
	OptimizationRuns *prometheus.CounterVec
	OptimizationTime prometheus.Histogram

	// Store metrics
	StoreErrors *prometheus.CounterVec
}

// Default is the process-wide metrics instance.
var Default = newMetrics()

func newMetrics() *Metrics {
	return &Metrics{
		EventsTracked: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "monetize_proof_events_tracked_total",
			Help: "Proof events appended, by event type.",
		}, []string{"event_type"}),
		ClicksTracked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "monetize_clicks_tracked_total",
			Help: "Affiliate link clicks appended.",
		}),
		ProofRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "monetize_proof_requests_total",
			Help: "Social proof aggregation calls.",
		}),
		WidgetsGenerated: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "monetize_widgets_per_request",
			Help:    "Widgets returned per social proof call.",
			Buckets: []float64{0, 1, 2, 3, 4},
		}),
		OptimizationRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "monetize_pricing_runs_total",
			Help: "Pricing optimization calls, by operation and outcome.",
		}, []string{"operation", "status"}),
		OptimizationTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "monetize_pricing_duration_seconds",
			Help:    "Pricing optimization call duration.",
			Buckets: prometheus.DefBuckets,
		}),
		StoreErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "monetize_store_errors_total",
			Help: "Store operation failures, by store.",
		}, []string{"store"}),
	}
}

// Handler returns the HTTP handler serving /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordEventTracked increments the tracked-event counter for a type.
func RecordEventTracked(eventType string) {
	Default.EventsTracked.WithLabelValues(eventType).Inc()
}

// RecordClickTracked increments the tracked-click counter.
func RecordClickTracked() {
	Default.ClicksTracked.Inc()
}

// RecordWidgetsGenerated records one social proof call and its widget count.
func RecordWidgetsGenerated(count int) {
	Default.ProofRequests.Inc()
	Default.WidgetsGenerated.Observe(float64(count))
}

// RecordOptimizationRun records one pricing operation with its outcome.
func RecordOptimizationRun(operation, status string, seconds float64) {
	Default.OptimizationRuns.WithLabelValues(operation, status).Inc()
	Default.OptimizationTime.Observe(seconds)
}

// RecordStoreError increments the store failure counter.
func RecordStoreError(store string) {
	Default.StoreErrors.WithLabelValues(store).Inc()
}
