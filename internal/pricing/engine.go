package pricing

import (
	"context"
	"fmt"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// PurchaseHistoryLimit is how many recent proof events are read when
// calibrating the demand model for a campaign.
const PurchaseHistoryLimit = 50

// Engine computes per-product pricing recommendations for a campaign.
type Engine struct {
	products storage.ProductStore
	events   storage.ProofEventStore
	model    DemandModel
}

// NewEngine creates a pricing engine over the given stores and demand model.
func NewEngine(products storage.ProductStore, events storage.ProofEventStore, model DemandModel) *Engine {
	return &Engine{
		products: products,
		events:   events,
		model:    model,
	}
}

// OptimizeCampaign produces one recommendation per campaign product plus the
// aggregate revenue-increase figure. A campaign with no products yields an
// empty recommendation set and a zero aggregate, not an error.
func (e *Engine) OptimizeCampaign(ctx context.Context, campaignID string) ([]domain.PricingRecommendation, float64, error) {
	products, err := e.products.GetByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, 0, fmt.Errorf("load campaign products: %w", err)
	}

	history, err := e.purchaseHistory(ctx, campaignID)
	if err != nil {
		return nil, 0, err
	}

	recs := make([]domain.PricingRecommendation, 0, len(products))
	for _, p := range products {
		est, err := e.model.Estimate(ctx, p, history[p.Name])
		if err != nil {
			return nil, 0, fmt.Errorf("estimate demand for %s: %w", p.ID, err)
		}
		if est.Elasticity >= 0 || est.RecommendedPrice <= 0 {
			return nil, 0, fmt.Errorf("demand model produced invalid estimate for %s", p.ID)
		}
		recs = append(recs, domain.PricingRecommendation{
			ProductID:        p.ID,
			CurrentPrice:     p.CurrentPrice,
			RecommendedPrice: est.RecommendedPrice,
			ExpectedRevenue:  est.ExpectedRevenue,
			PriceElasticity:  est.Elasticity,
			Confidence:       est.Confidence,
		})
	}

	return recs, TotalRevenueIncrease(recs), nil
}

// purchaseHistory groups recent purchase events by product name.
func (e *Engine) purchaseHistory(ctx context.Context, campaignID string) (map[string][]PurchaseSample, error) {
	events, err := e.events.GetRecentByCampaign(ctx, campaignID, PurchaseHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load purchase history: %w", err)
	}

	history := make(map[string][]PurchaseSample)
	for _, ev := range events {
		if ev.EventType != domain.EventTypePurchase || ev.Amount <= 0 {
			continue
		}
		history[ev.ProductName] = append(history[ev.ProductName], PurchaseSample{
			Amount: ev.Amount,
			At:     ev.CreatedAt,
		})
	}
	return history, nil
}

// TotalRevenueIncrease aggregates individual recommendations into one figure:
//
//	sum over i of ExpectedRevenue_i * (RecommendedPrice_i - CurrentPrice_i) / CurrentPrice_i
//
// This is a relative-price-change-weighted sum of expected revenues, not a
// revenue delta in currency units: a recommended price decrease contributes
// negatively even when its expected revenue is positive. The weighting is
// kept exactly as the product behavior defines it and is flagged for
// product-owner review; do not "correct" it here.
func TotalRevenueIncrease(recs []domain.PricingRecommendation) float64 {
	total := 0.0
	for _, r := range recs {
		if r.CurrentPrice <= 0 {
			continue
		}
		total += r.ExpectedRevenue * (r.RecommendedPrice - r.CurrentPrice) / r.CurrentPrice
	}
	return total
}
