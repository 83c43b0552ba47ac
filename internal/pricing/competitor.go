package pricing

import (
	"context"
	"fmt"
	"math"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// PricePositionTolerance is the band, in currency units, within which a
// price counts as "at" the market average.
const PricePositionTolerance = 0.01

// MarketSnapshot is the market view for one product URL: the campaign's own
// listed price and the competitor prices observed for comparable offers.
type MarketSnapshot struct {
	YourPrice        float64   `json:"your_price"`
	CompetitorPrices []float64 `json:"competitor_prices"`
}

// MarketSource supplies market snapshots keyed by product reference URL.
type MarketSource interface {
	Snapshot(ctx context.Context, productURL string) (MarketSnapshot, error)
}

// Monitor benchmarks product prices against market snapshots.
type Monitor struct {
	source MarketSource
}

// NewMonitor creates a competitor monitor over the given market source.
func NewMonitor(source MarketSource) *Monitor {
	return &Monitor{source: source}
}

// Compare produces exactly one comparison per input URL, preserving input
// order. The market average is recomputed per URL from that URL's actual
// competitor price set.
func (m *Monitor) Compare(ctx context.Context, productURLs []string) ([]domain.CompetitorComparison, error) {
	comparisons := make([]domain.CompetitorComparison, 0, len(productURLs))
	for _, url := range productURLs {
		snap, err := m.source.Snapshot(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("market snapshot for %s: %w", url, err)
		}

		avg := mean(snap.CompetitorPrices)
		comparisons = append(comparisons, domain.CompetitorComparison{
			ProductURL:       url,
			YourPrice:        snap.YourPrice,
			CompetitorPrices: snap.CompetitorPrices,
			AvgMarketPrice:   avg,
			PricePosition:    pricePosition(snap.YourPrice, avg),
		})
	}
	return comparisons, nil
}

// mean is the arithmetic mean rounded to cents; 0 for an empty set.
func mean(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range prices {
		sum += p
	}
	return math.Round(sum/float64(len(prices))*100) / 100
}

// pricePosition derives the position from the price comparison alone:
// below iff yours < avg, above iff yours > avg, at within the tolerance.
func pricePosition(yours, avg float64) string {
	switch {
	case yours < avg-PricePositionTolerance:
		return domain.PricePositionBelow
	case yours > avg+PricePositionTolerance:
		return domain.PricePositionAbove
	default:
		return domain.PricePositionAt
	}
}

// StaticMarketSource serves snapshots from a fixed table. It stands in for
// a scraping or data-vendor integration in tests and local runs.
type StaticMarketSource struct {
	Snapshots map[string]MarketSnapshot
}

// Snapshot returns the fixture for url, or ErrNotFound when the URL is
// not in the table.
func (s *StaticMarketSource) Snapshot(_ context.Context, productURL string) (MarketSnapshot, error) {
	snap, ok := s.Snapshots[productURL]
	if !ok {
		return MarketSnapshot{}, fmt.Errorf("snapshot for %s: %w", productURL, storage.ErrNotFound)
	}
	return snap, nil
}

var _ MarketSource = (*StaticMarketSource)(nil)
