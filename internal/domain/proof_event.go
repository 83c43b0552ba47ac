package domain

import "time"

// ProofEvent is a single social-proof event recorded against a campaign.
// Corresponds to proof_events table in PostgreSQL. Events are immutable
// once written; readers only ever see appended snapshots.
type ProofEvent struct {
	ID          string    // UUID assigned at ingestion
	CampaignID  string    // FK to campaigns
	EventType   string    // one of the EventType* constants
	ProductName string    // optional, empty when unknown
	Country     string    // optional ISO country name, empty when unknown
	Amount      float64   // optional purchase amount, 0 when absent
	CreatedAt   time.Time // event creation time (store clock)
}

// Proof event types. Unrecognized types are skipped during widget
// generation, never surfaced as errors.
const (
	EventTypePurchase = "purchase"
	EventTypeSignup   = "signup"
	EventTypeView     = "view"
	EventTypeCartAdd  = "cart_add"
)

// KnownEventType reports whether t is one of the enumerated proof event types.
func KnownEventType(t string) bool {
	switch t {
	case EventTypePurchase, EventTypeSignup, EventTypeView, EventTypeCartAdd:
		return true
	}
	return false
}
