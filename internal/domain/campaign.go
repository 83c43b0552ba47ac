package domain

import "time"

// Campaign is an affiliate marketing campaign owned by a single user.
// The owner is the sole writer of proof events for the campaign.
type Campaign struct {
	ID        string
	OwnerID   string
	Name      string
	Status    string // one of the CampaignStatus* constants
	CreatedAt time.Time
}

// Campaign status values.
const (
	CampaignStatusActive   = "active"
	CampaignStatusPaused   = "paused"
	CampaignStatusArchived = "archived"
)

// Product is a priced item promoted by a campaign.
type Product struct {
	ID           string
	CampaignID   string
	Name         string
	ReferenceURL string  // canonical product page, used for competitor lookup
	CurrentPrice float64 // current listed price, > 0
	BaseRevenue  float64 // trailing revenue per day at the current price
}
