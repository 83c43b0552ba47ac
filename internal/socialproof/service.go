package socialproof

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/identity"
	"campaign-monetization/internal/observability"
	"campaign-monetization/internal/storage"
)

// ProofResult is the outcome of a social proof aggregation call.
// A non-empty Error means the widget list is partial or empty and callers
// should render without social proof rather than fail.
type ProofResult struct {
	Widgets []domain.ProofWidget `json:"widgets"`
	Error   string               `json:"error,omitempty"`
}

// TrackResult is the outcome of an event ingestion call.
type TrackResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// TestimonialsResult is the outcome of a testimonial feed call.
type TestimonialsResult struct {
	Testimonials []domain.Testimonial `json:"testimonials"`
	Error        string               `json:"error,omitempty"`
}

// TrackEventInput describes one proof event to append.
type TrackEventInput struct {
	CampaignID  string  `json:"campaign_id"`
	EventType   string  `json:"event_type"`
	ProductName string  `json:"product_name,omitempty"`
	Country     string  `json:"country,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
}

// Service composes the event aggregator and the visitor estimator into one
// ranked widget feed, and owns event ingestion and the testimonial feed.
//
// Every method returns a result value and never an error or a panic: expected
// failures are reported through the result's Error field so callers can
// always render a well-typed "nothing to show" state.
type Service struct {
	aggregator   *Aggregator
	visitors     *VisitorEstimator
	resolver     identity.Resolver
	events       storage.ProofEventStore
	clicks       storage.ClickStore
	testimonials storage.TestimonialStore
	logger       *slog.Logger

	now func() time.Time
}

// NewService creates a social proof service with all required dependencies.
func NewService(
	aggregator *Aggregator,
	visitors *VisitorEstimator,
	resolver identity.Resolver,
	events storage.ProofEventStore,
	clicks storage.ClickStore,
	testimonials storage.TestimonialStore,
	logger *slog.Logger,
) *Service {
	return &Service{
		aggregator:   aggregator,
		visitors:     visitors,
		resolver:     resolver,
		events:       events,
		clicks:       clicks,
		testimonials: testimonials,
		logger:       logger,
		now:          time.Now,
	}
}

// GenerateSocialProof builds the ranked widget list for a campaign: up to
// EventWidgetCap recent-activity widgets plus, for an identified caller with
// recent clicks, one live-visitor widget. On any fault it degrades to the
// widgets built so far plus an error string.
func (s *Service) GenerateSocialProof(ctx context.Context, campaignID string) (result ProofResult) {
	// Widgets is always a well-typed empty slice, never null on the wire.
	result.Widgets = []domain.ProofWidget{}
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "social proof panic recovered",
				slog.String("campaign_id", campaignID), slog.Any("panic", r))
			result.Error = "Social proof generation failed"
		}
	}()

	widgets, err := s.aggregator.WidgetsForCampaign(ctx, campaignID)
	result.Widgets = append(result.Widgets, widgets...)
	if err != nil {
		s.logger.WarnContext(ctx, "proof event aggregation failed",
			slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
		result.Error = "Social proof generation failed"
		return result
	}

	caller, err := s.resolver.Current(ctx)
	if err != nil {
		// Identity resolution failure degrades to the anonymous view.
		s.logger.WarnContext(ctx, "identity resolution failed",
			slog.String("error", err.Error()))
		caller = nil
	}

	if visitorWidget, err := s.visitors.Widget(ctx, caller); err != nil {
		s.logger.WarnContext(ctx, "live visitor estimation failed",
			slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
		// Event widgets alone are still a useful result.
	} else if visitorWidget != nil {
		result.Widgets = append(result.Widgets, *visitorWidget)
	}

	sort.SliceStable(result.Widgets, func(i, j int) bool {
		return result.Widgets[i].Priority > result.Widgets[j].Priority
	})

	observability.RecordWidgetsGenerated(len(result.Widgets))
	return result
}

// TrackEvent appends one immutable proof event. Validation stops at the
// enumerated event types; ownership checks belong to the caller.
func (s *Service) TrackEvent(ctx context.Context, in TrackEventInput) TrackResult {
	if in.CampaignID == "" || !domain.KnownEventType(in.EventType) {
		return TrackResult{Error: "invalid event"}
	}

	event := &domain.ProofEvent{
		ID:          uuid.NewString(),
		CampaignID:  in.CampaignID,
		EventType:   in.EventType,
		ProductName: in.ProductName,
		Country:     in.Country,
		Amount:      in.Amount,
		CreatedAt:   s.now(),
	}

	if err := s.events.Insert(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "track event failed",
			slog.String("campaign_id", in.CampaignID), slog.String("error", err.Error()))
		observability.RecordStoreError("proof_events")
		return TrackResult{Error: err.Error()}
	}

	observability.RecordEventTracked(in.EventType)
	return TrackResult{Success: true}
}

// TrackClick appends one click event for an affiliate link.
func (s *Service) TrackClick(ctx context.Context, linkID string) TrackResult {
	if linkID == "" {
		return TrackResult{Error: "invalid link"}
	}

	click := &domain.ClickEvent{
		ID:        uuid.NewString(),
		LinkID:    linkID,
		ClickedAt: s.now(),
	}

	if err := s.clicks.Insert(ctx, click); err != nil {
		s.logger.WarnContext(ctx, "track click failed",
			slog.String("link_id", linkID), slog.String("error", err.Error()))
		observability.RecordStoreError("click_events")
		return TrackResult{Error: err.Error()}
	}

	observability.RecordClickTracked()
	return TrackResult{Success: true}
}

// GetTestimonials returns the testimonial feed for a campaign. Reading twice
// with no intervening writes yields identical results.
func (s *Service) GetTestimonials(ctx context.Context, campaignID string) TestimonialsResult {
	items, err := s.testimonials.GetByCampaignID(ctx, campaignID)
	if err != nil {
		s.logger.WarnContext(ctx, "testimonial read failed",
			slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
		observability.RecordStoreError("testimonials")
		return TestimonialsResult{Testimonials: []domain.Testimonial{}, Error: "Testimonials unavailable"}
	}

	out := make([]domain.Testimonial, 0, len(items))
	for _, t := range items {
		out = append(out, *t)
	}
	return TestimonialsResult{Testimonials: out}
}
