// Package socialproof converts raw campaign activity into a small ranked
// set of display widgets: recent-activity notices derived from proof events
// and a live-visitor count derived from a sliding window over clicks.
package socialproof

import (
	"context"
	"fmt"
	"time"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/idhash"
	"campaign-monetization/internal/storage"
)

// Aggregation constants. Fetch and display caps are behavior-defining:
// the store is asked for EventFetchLimit newest events, and only the
// EventWidgetCap most recent of those are ever widgetized.
const (
	// EventFetchLimit is how many recent events are read per aggregation.
	EventFetchLimit = 10

	// EventWidgetCap bounds how many fetched events become widgets.
	EventWidgetCap = 3

	// EventWidgetDurationMs is the fixed display duration of an
	// event-derived widget.
	EventWidgetDurationMs = 5000

	// EventWidgetTopPriority is the priority of the newest event widget;
	// each subsequent widget gets one less. Kept above LiveVisitorPriority
	// so a full batch of event widgets still ranks ahead of the
	// live-visitor widget.
	EventWidgetTopPriority = 11
)

// Aggregator turns recent proof events into display widgets.
type Aggregator struct {
	events storage.ProofEventStore

	// now is the clock used for elapsed-time rendering. Overridable in tests.
	now func() time.Time
}

// NewAggregator creates a proof event aggregator reading from the given store.
func NewAggregator(events storage.ProofEventStore) *Aggregator {
	return &Aggregator{
		events: events,
		now:    time.Now,
	}
}

// WidgetsForCampaign reads the newest events for a campaign and converts the
// top EventWidgetCap of them into widgets, newest first. Events whose type
// has no display mapping are skipped without error.
func (a *Aggregator) WidgetsForCampaign(ctx context.Context, campaignID string) ([]domain.ProofWidget, error) {
	events, err := a.events.GetRecentByCampaign(ctx, campaignID, EventFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("read recent events: %w", err)
	}

	if len(events) > EventWidgetCap {
		events = events[:EventWidgetCap]
	}

	now := a.now()
	widgets := make([]domain.ProofWidget, 0, len(events))
	priority := EventWidgetTopPriority
	for _, e := range events {
		content, ok := eventContent(e, now)
		if !ok {
			continue
		}
		widgets = append(widgets, domain.ProofWidget{
			ID:                idhash.ComputeWidgetID(campaignID, domain.WidgetTypeRecentPurchase, e.ID),
			Type:              domain.WidgetTypeRecentPurchase,
			Content:           content,
			Priority:          priority,
			DisplayDurationMs: EventWidgetDurationMs,
		})
		priority--
	}

	return widgets, nil
}

// eventContent renders the human-readable widget text for an event.
// Returns ok=false for event types with no display mapping.
func eventContent(e *domain.ProofEvent, now time.Time) (string, bool) {
	mins := minutesAgo(e.CreatedAt, now)

	switch e.EventType {
	case domain.EventTypePurchase:
		country := e.Country
		if country == "" {
			country = "Unknown"
		}
		product := e.ProductName
		if product == "" {
			product = "a product"
		}
		return fmt.Sprintf("Someone from %s just purchased %s %d minutes ago", country, product, mins), true

	case domain.EventTypeSignup:
		who := e.Country
		if who == "" {
			who = "Someone"
		}
		return fmt.Sprintf("%s just signed up %d minutes ago", who, mins), true

	case domain.EventTypeCartAdd:
		product := e.ProductName
		if product == "" {
			product = "This product"
		}
		return fmt.Sprintf("%s was added to cart %d minutes ago", product, mins), true
	}

	return "", false
}

// minutesAgo is the floor of elapsed whole minutes between createdAt and now,
// clamped to zero so clock skew never renders a negative age.
func minutesAgo(createdAt, now time.Time) int {
	mins := int(now.Sub(createdAt) / time.Minute)
	if mins < 0 {
		return 0
	}
	return mins
}
