package socialproof

import (
	"context"
	"fmt"
	"time"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/idhash"
	"campaign-monetization/internal/identity"
	"campaign-monetization/internal/storage"
)

// Live-visitor estimation constants.
const (
	// LiveVisitorWindow is the trailing window over click events.
	LiveVisitorWindow = 5 * time.Minute

	// LiveVisitorPriority is the fixed priority of the live-visitor widget.
	LiveVisitorPriority = 8

	// LiveVisitorDurationMs is the display duration of the live-visitor widget.
	LiveVisitorDurationMs = 8000
)

// VisitorEstimator derives an active-visitor count from recent clicks on
// the caller's affiliate links. It is an approximation of concurrent
// interest, not true session presence.
type VisitorEstimator struct {
	links  storage.LinkStore
	clicks storage.ClickStore

	now func() time.Time
}

// NewVisitorEstimator creates a live-visitor estimator over the given stores.
func NewVisitorEstimator(links storage.LinkStore, clicks storage.ClickStore) *VisitorEstimator {
	return &VisitorEstimator{
		links:  links,
		clicks: clicks,
		now:    time.Now,
	}
}

// Widget returns a live-visitor widget for the identified caller, or nil when
// the caller owns no links or no clicks landed inside the trailing window.
// A nil result is a normal outcome, not an error.
func (v *VisitorEstimator) Widget(ctx context.Context, caller *identity.Identity) (*domain.ProofWidget, error) {
	if caller == nil {
		return nil, nil
	}

	linkIDs, err := v.links.ListByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list owned links: %w", err)
	}
	if len(linkIDs) == 0 {
		return nil, nil
	}

	since := v.now().Add(-LiveVisitorWindow)
	count, err := v.clicks.CountSince(ctx, linkIDs, since)
	if err != nil {
		return nil, fmt.Errorf("count clicks: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	return &domain.ProofWidget{
		ID:                idhash.ComputeWidgetID(caller.UserID, domain.WidgetTypeLiveVisitors, "window"),
		Type:              domain.WidgetTypeLiveVisitors,
		Content:           fmt.Sprintf("%d people are viewing this right now", count),
		Priority:          LiveVisitorPriority,
		DisplayDurationMs: LiveVisitorDurationMs,
	}, nil
}
