package pricing

import (
	"context"
	"log/slog"
	"time"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/identity"
	"campaign-monetization/internal/observability"
)

// Fixed user-facing failure strings. Internal faults are logged with detail;
// callers only ever see these.
const (
	errPricingFailed    = "Pricing optimization failed"
	errCompetitorFailed = "Competitor monitoring failed"
	errNotAuthenticated = "Not authenticated"
)

// OptimizationResult is the outcome of a pricing optimization call.
type OptimizationResult struct {
	Recommendations      []domain.PricingRecommendation `json:"recommendations"`
	TotalRevenueIncrease float64                        `json:"total_revenue_increase"`
	Error                string                         `json:"error,omitempty"`
}

// CompetitorResult is the outcome of a competitor monitoring call.
type CompetitorResult struct {
	Comparisons []domain.CompetitorComparison `json:"comparisons"`
	Error       string                        `json:"error,omitempty"`
}

// SurgeResult is the outcome of a surge scheduling call.
type SurgeResult struct {
	SurgeSchedule []domain.SurgeSlot `json:"surge_schedule"`
	Error         string             `json:"error,omitempty"`
}

// Service composes the pricing engine, competitor monitor and surge
// scheduler behind one identity-gated facade. Methods return result values
// with an Error field and never propagate a Go error or a panic: an
// anonymous caller and an unreachable store are expected outcomes, reported
// through the error channel with empty-but-well-typed payloads.
type Service struct {
	engine    *Engine
	monitor   *Monitor
	scheduler *Scheduler
	resolver  identity.Resolver
	logger    *slog.Logger
}

// NewService creates a pricing service with all required dependencies.
func NewService(engine *Engine, monitor *Monitor, scheduler *Scheduler, resolver identity.Resolver, logger *slog.Logger) *Service {
	return &Service{
		engine:    engine,
		monitor:   monitor,
		scheduler: scheduler,
		resolver:  resolver,
		logger:    logger,
	}
}

// OptimizePricing computes per-product recommendations for a campaign.
// Requires a resolved caller identity; without one it returns empty
// recommendations and a populated error field. All computed recommendations
// are returned regardless of confidence; ranking is a caller concern.
func (s *Service) OptimizePricing(ctx context.Context, campaignID string) (result OptimizationResult) {
	start := time.Now()
	result.Recommendations = []domain.PricingRecommendation{}

	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "pricing optimization panic recovered",
				slog.String("campaign_id", campaignID), slog.Any("panic", r))
			result = OptimizationResult{
				Recommendations: []domain.PricingRecommendation{},
				Error:           errPricingFailed,
			}
		}
		status := "success"
		if result.Error != "" {
			status = "error"
		}
		observability.RecordOptimizationRun("optimize_pricing", status, time.Since(start).Seconds())
	}()

	caller, err := s.resolver.Current(ctx)
	if err != nil || caller == nil {
		result.Error = errNotAuthenticated
		return result
	}

	recs, total, err := s.engine.OptimizeCampaign(ctx, campaignID)
	if err != nil {
		s.logger.WarnContext(ctx, "pricing optimization failed",
			slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
		result.Error = errPricingFailed
		return result
	}

	result.Recommendations = recs
	result.TotalRevenueIncrease = total
	return result
}

// MonitorCompetitors benchmarks the given product URLs against market
// snapshots, one comparison per URL in input order.
func (s *Service) MonitorCompetitors(ctx context.Context, productURLs []string) (result CompetitorResult) {
	start := time.Now()
	result.Comparisons = []domain.CompetitorComparison{}

	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "competitor monitoring panic recovered",
				slog.Any("panic", r))
			result = CompetitorResult{
				Comparisons: []domain.CompetitorComparison{},
				Error:       errCompetitorFailed,
			}
		}
		status := "success"
		if result.Error != "" {
			status = "error"
		}
		observability.RecordOptimizationRun("monitor_competitors", status, time.Since(start).Seconds())
	}()

	caller, err := s.resolver.Current(ctx)
	if err != nil || caller == nil {
		result.Error = errNotAuthenticated
		return result
	}

	comparisons, err := s.monitor.Compare(ctx, productURLs)
	if err != nil {
		s.logger.WarnContext(ctx, "competitor monitoring failed",
			slog.String("error", err.Error()))
		result.Error = errCompetitorFailed
		return result
	}

	result.Comparisons = comparisons
	return result
}

// OptimizeSurgePricing builds the per-slot surge schedule for a campaign.
func (s *Service) OptimizeSurgePricing(ctx context.Context, campaignID string) (result SurgeResult) {
	start := time.Now()
	result.SurgeSchedule = []domain.SurgeSlot{}

	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "surge scheduling panic recovered",
				slog.String("campaign_id", campaignID), slog.Any("panic", r))
			result = SurgeResult{
				SurgeSchedule: []domain.SurgeSlot{},
				Error:         errPricingFailed,
			}
		}
		status := "success"
		if result.Error != "" {
			status = "error"
		}
		observability.RecordOptimizationRun("surge_pricing", status, time.Since(start).Seconds())
	}()

	caller, err := s.resolver.Current(ctx)
	if err != nil || caller == nil {
		result.Error = errNotAuthenticated
		return result
	}

	schedule, err := s.scheduler.Schedule(ctx, campaignID)
	if err != nil {
		s.logger.WarnContext(ctx, "surge scheduling failed",
			slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
		result.Error = errPricingFailed
		return result
	}

	result.SurgeSchedule = schedule
	return result
}
