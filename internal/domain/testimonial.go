package domain

// Testimonial is a customer quote attached to a campaign.
// Rating is constrained to 1..5.
type Testimonial struct {
	ID         string
	CampaignID string
	Author     string
	Content    string
	Rating     int
	Verified   bool
}
