package domain

// PricingRecommendation is a per-product price suggestion produced by the
// optimization engine. Not persisted by the core.
//
// Invariants: PriceElasticity < 0, Confidence in [0,100], RecommendedPrice > 0.
type PricingRecommendation struct {
	ProductID        string
	CurrentPrice     float64
	RecommendedPrice float64
	ExpectedRevenue  float64 // demand-adjusted revenue at the recommended price
	PriceElasticity  float64
	Confidence       float64 // model certainty as a bounded percentage
}

// CompetitorComparison benchmarks one product URL against a market snapshot.
// AvgMarketPrice is always the arithmetic mean of CompetitorPrices and
// PricePosition is derived from YourPrice vs AvgMarketPrice, never set
// independently.
type CompetitorComparison struct {
	ProductURL       string
	YourPrice        float64
	CompetitorPrices []float64
	AvgMarketPrice   float64
	PricePosition    string // one of the PricePosition* constants
}

// Price positions relative to the market average.
const (
	PricePositionBelow = "below"
	PricePositionAt    = "at"
	PricePositionAbove = "above"
)

// SurgeSlot is one named time window of the surge pricing schedule.
// Multipliers are positive and non-decreasing with demand level,
// with low <= 1.0 <= high.
type SurgeSlot struct {
	TimeSlot        string
	DemandLevel     string // one of the DemandLevel* constants
	PriceMultiplier float64
	ExpectedRevenue float64
}

// Demand levels for surge classification.
const (
	DemandLevelLow    = "low"
	DemandLevelMedium = "medium"
	DemandLevelHigh   = "high"
)
