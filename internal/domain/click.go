package domain

import "time"

// ClickEvent is a single click on an affiliate link.
// Corresponds to click_events in ClickHouse. Scoped to a user's set of
// affiliate links; the core only appends and reads, never mutates.
type ClickEvent struct {
	ID        string
	LinkID    string
	ClickedAt time.Time
}

// AffiliateLink is a tracked link owned by a single user.
type AffiliateLink struct {
	ID         string
	OwnerID    string
	CampaignID string
	URL        string
	CreatedAt  time.Time
}
