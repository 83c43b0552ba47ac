package storage

import (
	"context"
	"time"

	"campaign-monetization/internal/domain"
)

// CampaignStore provides access to campaigns storage.
type CampaignStore interface {
	// Insert adds a new campaign. Returns ErrDuplicateKey if the ID exists.
	Insert(ctx context.Context, c *domain.Campaign) error

	// GetByID retrieves a campaign by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, campaignID string) (*domain.Campaign, error)

	// GetByOwner retrieves all campaigns owned by a user, ordered by creation time ASC.
	GetByOwner(ctx context.Context, ownerID string) ([]*domain.Campaign, error)
}

// ProductStore provides access to campaign products.
type ProductStore interface {
	// Insert adds a new product. Returns ErrDuplicateKey if the ID exists.
	Insert(ctx context.Context, p *domain.Product) error

	// GetByID retrieves a product by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, productID string) (*domain.Product, error)

	// GetByCampaignID retrieves all products for a campaign, ordered by ID ASC.
	GetByCampaignID(ctx context.Context, campaignID string) ([]*domain.Product, error)
}

// ProofEventStore is the append-only log of social-proof events.
type ProofEventStore interface {
	// Insert appends a new event. Returns ErrDuplicateKey if the ID exists.
	Insert(ctx context.Context, e *domain.ProofEvent) error

	// GetRecentByCampaign retrieves up to limit events for a campaign,
	// ordered by CreatedAt DESC (newest first).
	GetRecentByCampaign(ctx context.Context, campaignID string, limit int) ([]*domain.ProofEvent, error)
}

// LinkStore provides access to affiliate links.
type LinkStore interface {
	// Insert adds a new link. Returns ErrDuplicateKey if the ID exists.
	Insert(ctx context.Context, l *domain.AffiliateLink) error

	// ListByOwner retrieves the IDs of all links owned by a user.
	ListByOwner(ctx context.Context, ownerID string) ([]string, error)
}

// ClickStore is the append-only log of affiliate link clicks.
type ClickStore interface {
	// Insert appends a new click event.
	Insert(ctx context.Context, c *domain.ClickEvent) error

	// CountSince counts clicks across the given links with ClickedAt >= since.
	CountSince(ctx context.Context, linkIDs []string, since time.Time) (int, error)

	// HourlyCounts returns click counts bucketed by hour of day (0..23, UTC)
	// for clicks on the given links with ClickedAt >= since.
	HourlyCounts(ctx context.Context, linkIDs []string, since time.Time) ([24]int64, error)
}

// TestimonialStore provides access to campaign testimonials.
type TestimonialStore interface {
	// Insert adds a new testimonial. Returns ErrDuplicateKey if the ID exists.
	Insert(ctx context.Context, t *domain.Testimonial) error

	// GetByCampaignID retrieves all testimonials for a campaign, ordered by ID ASC.
	GetByCampaignID(ctx context.Context, campaignID string) ([]*domain.Testimonial, error)
}
