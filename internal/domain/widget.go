package domain

// ProofWidget is an ephemeral display element derived from recent activity.
// Widgets are constructed per aggregation call and never persisted.
// Priority strictly orders display sequence (higher first) and
// DisplayDurationMs is always positive.
type ProofWidget struct {
	ID                string
	Type              string // one of the WidgetType* constants
	Content           string
	Priority          int
	DisplayDurationMs int
}

// Widget types.
const (
	WidgetTypeRecentPurchase = "recent_purchase"
	WidgetTypeLiveVisitors   = "live_visitors"
	WidgetTypeTestimonial    = "testimonial"
	WidgetTypeCountdown      = "countdown"
	WidgetTypeStockAlert     = "stock_alert"
)
