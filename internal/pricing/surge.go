package pricing

import (
	"context"
	"fmt"
	"time"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// Slot is one named time window of the surge schedule.
type Slot struct {
	Name      string
	StartHour int // inclusive, 0..23
	EndHour   int // exclusive, 1..24
}

// DefaultSlots are six fixed four-hour windows covering a day.
var DefaultSlots = []Slot{
	{Name: "00:00-04:00", StartHour: 0, EndHour: 4},
	{Name: "04:00-08:00", StartHour: 4, EndHour: 8},
	{Name: "08:00-12:00", StartHour: 8, EndHour: 12},
	{Name: "12:00-16:00", StartHour: 12, EndHour: 16},
	{Name: "16:00-20:00", StartHour: 16, EndHour: 20},
	{Name: "20:00-24:00", StartHour: 20, EndHour: 24},
}

// ClassifierWindow is how far back the click profile looks when
// classifying slot demand.
const ClassifierWindow = 7 * 24 * time.Hour

// Demand thresholds relative to the mean slot volume.
const (
	highDemandRatio = 1.3
	lowDemandRatio  = 0.7
)

// Price multipliers per demand level. Ordering is the invariant:
// low <= 1.0 <= high, non-decreasing with demand.
var demandMultipliers = map[string]float64{
	domain.DemandLevelLow:    0.95,
	domain.DemandLevelMedium: 1.0,
	domain.DemandLevelHigh:   1.15,
}

// Demand weights used for per-slot revenue estimates: busier slots convert
// a larger share of daily revenue.
var demandWeights = map[string]float64{
	domain.DemandLevelLow:    0.8,
	domain.DemandLevelMedium: 1.0,
	domain.DemandLevelHigh:   1.25,
}

// DemandClassifier tags each slot with a demand level for a campaign.
type DemandClassifier interface {
	Classify(ctx context.Context, campaignID string, slots []Slot) ([]string, error)
}

// Scheduler produces a per-slot price-multiplier schedule from demand
// classification. Slots are fixed; classification, multiplier selection and
// revenue estimation stay pluggable behind DemandClassifier.
type Scheduler struct {
	products   storage.ProductStore
	classifier DemandClassifier
	slots      []Slot
}

// NewScheduler creates a surge scheduler with the default slot set.
func NewScheduler(products storage.ProductStore, classifier DemandClassifier) *Scheduler {
	return &Scheduler{
		products:   products,
		classifier: classifier,
		slots:      DefaultSlots,
	}
}

// Schedule builds the surge schedule for a campaign: one SurgeSlot per
// named window with its demand level, multiplier and revenue estimate.
func (s *Scheduler) Schedule(ctx context.Context, campaignID string) ([]domain.SurgeSlot, error) {
	levels, err := s.classifier.Classify(ctx, campaignID, s.slots)
	if err != nil {
		return nil, fmt.Errorf("classify demand: %w", err)
	}
	if len(levels) != len(s.slots) {
		return nil, fmt.Errorf("classifier returned %d levels for %d slots", len(levels), len(s.slots))
	}

	dailyRevenue, err := s.campaignDailyRevenue(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	perSlot := dailyRevenue / float64(len(s.slots))

	schedule := make([]domain.SurgeSlot, 0, len(s.slots))
	for i, slot := range s.slots {
		level := levels[i]
		mult, ok := demandMultipliers[level]
		if !ok {
			return nil, fmt.Errorf("unknown demand level %q for slot %s", level, slot.Name)
		}
		schedule = append(schedule, domain.SurgeSlot{
			TimeSlot:        slot.Name,
			DemandLevel:     level,
			PriceMultiplier: mult,
			ExpectedRevenue: round2(perSlot * mult * demandWeights[level]),
		})
	}
	return schedule, nil
}

func (s *Scheduler) campaignDailyRevenue(ctx context.Context, campaignID string) (float64, error) {
	products, err := s.products.GetByCampaignID(ctx, campaignID)
	if err != nil {
		return 0, fmt.Errorf("load campaign products: %w", err)
	}

	total := 0.0
	for _, p := range products {
		total += p.BaseRevenue
	}
	return total, nil
}

// ClickProfileClassifier classifies slot demand from the campaign's hourly
// click volume over the trailing classifier window. Slots above
// highDemandRatio of the mean volume are high, below lowDemandRatio are low.
// A campaign with no click history classifies every slot as medium.
type ClickProfileClassifier struct {
	campaigns storage.CampaignStore
	links     storage.LinkStore
	clicks    storage.ClickStore

	now func() time.Time
}

// NewClickProfileClassifier creates a classifier over the given stores.
func NewClickProfileClassifier(campaigns storage.CampaignStore, links storage.LinkStore, clicks storage.ClickStore) *ClickProfileClassifier {
	return &ClickProfileClassifier{
		campaigns: campaigns,
		links:     links,
		clicks:    clicks,
		now:       time.Now,
	}
}

// Classify returns one demand level per slot, in slot order.
func (c *ClickProfileClassifier) Classify(ctx context.Context, campaignID string, slots []Slot) ([]string, error) {
	campaign, err := c.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("load campaign: %w", err)
	}

	linkIDs, err := c.links.ListByOwner(ctx, campaign.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("list owner links: %w", err)
	}

	var hourly [24]int64
	if len(linkIDs) > 0 {
		since := c.now().Add(-ClassifierWindow)
		hourly, err = c.clicks.HourlyCounts(ctx, linkIDs, since)
		if err != nil {
			return nil, fmt.Errorf("hourly click counts: %w", err)
		}
	}

	volumes := make([]int64, len(slots))
	var total int64
	for i, slot := range slots {
		for h := slot.StartHour; h < slot.EndHour; h++ {
			volumes[i] += hourly[h%24]
		}
		total += volumes[i]
	}

	levels := make([]string, len(slots))
	if total == 0 {
		for i := range levels {
			levels[i] = domain.DemandLevelMedium
		}
		return levels, nil
	}

	meanVolume := float64(total) / float64(len(slots))
	for i, v := range volumes {
		switch {
		case float64(v) > meanVolume*highDemandRatio:
			levels[i] = domain.DemandLevelHigh
		case float64(v) < meanVolume*lowDemandRatio:
			levels[i] = domain.DemandLevelLow
		default:
			levels[i] = domain.DemandLevelMedium
		}
	}
	return levels, nil
}

var _ DemandClassifier = (*ClickProfileClassifier)(nil)
