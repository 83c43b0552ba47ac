package pricing

import (
	"context"
	"testing"
	"time"

	"campaign-monetization/internal/domain"
)

func TestElasticityModel_ElasticDemandCutsPrice(t *testing.T) {
	// With |elasticity| > 1 revenue falls as price rises, so the scan
	// should settle at the lower bound of the allowed move.
	model := DefaultElasticityModel()
	product := &domain.Product{ID: "p1", Name: "widget", CurrentPrice: 100, BaseRevenue: 5000}

	est, err := model.Estimate(context.Background(), product, nil)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if est.RecommendedPrice >= product.CurrentPrice {
		t.Errorf("recommended %v, want below current %v", est.RecommendedPrice, product.CurrentPrice)
	}
	if est.RecommendedPrice < product.CurrentPrice*(1-model.MaxMove)-0.01 {
		t.Errorf("recommended %v breaches max move bound", est.RecommendedPrice)
	}
	if est.Elasticity >= 0 {
		t.Errorf("elasticity %v, want < 0", est.Elasticity)
	}
}

func TestElasticityModel_InelasticDemandRaisesPrice(t *testing.T) {
	model := &ElasticityModel{Elasticity: -0.5, MaxMove: 0.15, Steps: 60}
	product := &domain.Product{ID: "p1", Name: "widget", CurrentPrice: 100, BaseRevenue: 5000}

	est, err := model.Estimate(context.Background(), product, nil)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if est.RecommendedPrice <= product.CurrentPrice {
		t.Errorf("recommended %v, want above current %v", est.RecommendedPrice, product.CurrentPrice)
	}
	if est.RecommendedPrice > product.CurrentPrice*(1+model.MaxMove)+0.01 {
		t.Errorf("recommended %v breaches max move bound", est.RecommendedPrice)
	}
}

func TestElasticityModel_NoPriceData(t *testing.T) {
	model := DefaultElasticityModel()

	if _, err := model.Estimate(context.Background(), nil, nil); err != ErrNoPriceData {
		t.Errorf("nil product: got %v, want ErrNoPriceData", err)
	}

	product := &domain.Product{ID: "p1", CurrentPrice: 0}
	if _, err := model.Estimate(context.Background(), product, nil); err != ErrNoPriceData {
		t.Errorf("zero price: got %v, want ErrNoPriceData", err)
	}
}

func TestElasticityModel_MissingBaseRevenue(t *testing.T) {
	// Without revenue history the model calibrates a synthetic reference
	// demand; the estimate must still be well formed.
	model := DefaultElasticityModel()
	product := &domain.Product{ID: "p1", Name: "widget", CurrentPrice: 25}

	est, err := model.Estimate(context.Background(), product, nil)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if est.RecommendedPrice <= 0 {
		t.Errorf("recommended price %v, want > 0", est.RecommendedPrice)
	}
	if est.ExpectedRevenue <= 0 {
		t.Errorf("expected revenue %v, want > 0", est.ExpectedRevenue)
	}
}

func TestConfidenceFromSamples(t *testing.T) {
	history := func(n int) []PurchaseSample {
		samples := make([]PurchaseSample, n)
		for i := range samples {
			samples[i] = PurchaseSample{Amount: 10, At: time.Now()}
		}
		return samples
	}

	model := DefaultElasticityModel()
	product := &domain.Product{ID: "p1", Name: "widget", CurrentPrice: 50, BaseRevenue: 1000}

	prev := -1.0
	for _, n := range []int{0, 1, 5, 20, 50, 1000} {
		est, err := model.Estimate(context.Background(), product, history(n))
		if err != nil {
			t.Fatalf("Estimate with %d samples failed: %v", n, err)
		}
		if est.Confidence < 0 || est.Confidence > 100 {
			t.Errorf("%d samples: confidence %v outside [0,100]", n, est.Confidence)
		}
		if est.Confidence < prev {
			t.Errorf("%d samples: confidence %v dropped below %v", n, est.Confidence, prev)
		}
		prev = est.Confidence
	}

	if c := confidenceFromSamples(0); c != 35 {
		t.Errorf("zero samples: confidence %v, want floor 35", c)
	}
	if c := confidenceFromSamples(1_000_000); c != 95 {
		t.Errorf("huge sample: confidence %v, want cap 95", c)
	}
}
