package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campaign-monetization/internal/config"
	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/identity"
	"campaign-monetization/internal/pricing"
	"campaign-monetization/internal/socialproof"
	"campaign-monetization/internal/storage/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()

	campaigns := memory.NewCampaignStore()
	products := memory.NewProductStore()
	events := memory.NewProofEventStore()
	links := memory.NewLinkStore()
	clicks := memory.NewClickStore()
	testimonials := memory.NewTestimonialStore()

	if err := campaigns.Insert(ctx, &domain.Campaign{
		ID: "camp-1", OwnerID: "user-1", Name: "Launch", Status: domain.CampaignStatusActive,
	}); err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	if err := products.Insert(ctx, &domain.Product{
		ID: "prod-1", CampaignID: "camp-1", Name: "Starter Kit", CurrentPrice: 49.99, BaseRevenue: 8200,
	}); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if err := links.Insert(ctx, &domain.AffiliateLink{
		ID: "link-1", OwnerID: "user-1", CampaignID: "camp-1", URL: "https://aff.example/launch",
	}); err != nil {
		t.Fatalf("seed link: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := identity.ContextResolver{}

	engine := pricing.NewEngine(products, events, pricing.DefaultElasticityModel())
	monitor := pricing.NewMonitor(&pricing.StaticMarketSource{Snapshots: map[string]pricing.MarketSnapshot{
		"https://shop.example/starter": {YourPrice: 49.99, CompetitorPrices: []float64{45.99, 52.99, 48.99, 54.99}},
	}})
	scheduler := pricing.NewScheduler(products, pricing.NewClickProfileClassifier(campaigns, links, clicks))
	pricingSvc := pricing.NewService(engine, monitor, scheduler, resolver, logger)

	aggregator := socialproof.NewAggregator(events)
	visitors := socialproof.NewVisitorEstimator(links, clicks)
	proofSvc := socialproof.NewService(aggregator, visitors, resolver, events, clicks, testimonials, logger)

	cfg := config.Defaults()
	cfg.Auth.Keys = map[string]string{"token-abc": "user-1"}

	return New(cfg, pricingSvc, proofSvc, logger)
}

func doRequest(t *testing.T, s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_TrackAndGenerateProof(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/proof/events", "",
		`{"campaign_id":"camp-1","event_type":"purchase","product_name":"Starter Kit","country":"Norway","amount":49.99}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("track event status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, s, http.MethodGet, "/api/proof/camp-1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("proof status %d", rec.Code)
	}

	var proof socialproof.ProofResult
	if err := json.Unmarshal(rec.Body.Bytes(), &proof); err != nil {
		t.Fatalf("decode proof: %v", err)
	}
	if proof.Error != "" || len(proof.Widgets) != 1 {
		t.Errorf("unexpected proof result: %+v", proof)
	}
	if !strings.Contains(proof.Widgets[0].Content, "Norway") {
		t.Errorf("widget content %q missing country", proof.Widgets[0].Content)
	}
}

func TestServer_TrackEventRejected(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/proof/events", "",
		`{"campaign_id":"camp-1","event_type":"refund"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status %d, want 422", rec.Code)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/proof/events", "", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestServer_OptimizePricing_AuthGate(t *testing.T) {
	s := newTestServer(t)

	// Anonymous callers get a 200 with an error payload, not a 401.
	rec := doRequest(t, s, http.MethodPost, "/api/pricing/optimize/camp-1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	var anon pricing.OptimizationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &anon); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if anon.Error != "Not authenticated" || len(anon.Recommendations) != 0 {
		t.Errorf("anonymous result: %+v", anon)
	}

	// Unknown tokens also resolve to anonymous.
	rec = doRequest(t, s, http.MethodPost, "/api/pricing/optimize/camp-1", "bogus-token", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &anon); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if anon.Error != "Not authenticated" {
		t.Errorf("unknown token result: %+v", anon)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/pricing/optimize/camp-1", "token-abc", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	var authed pricing.OptimizationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &authed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if authed.Error != "" || len(authed.Recommendations) != 1 {
		t.Errorf("authenticated result: %+v", authed)
	}
}

func TestServer_MonitorCompetitors(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/pricing/competitors", "token-abc",
		`{"product_urls":["https://shop.example/starter"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var result pricing.CompetitorResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Error != "" || len(result.Comparisons) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Comparisons[0].AvgMarketPrice != 50.74 {
		t.Errorf("avg = %v, want 50.74", result.Comparisons[0].AvgMarketPrice)
	}
}

func TestServer_SurgePricing(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/pricing/surge/camp-1", "token-abc", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var result pricing.SurgeResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Error != "" || len(result.SurgeSchedule) != 6 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestServer_TrackClickAndTestimonials(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/clicks/link-1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("track click status %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/testimonials/camp-1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("testimonials status %d", rec.Code)
	}
	var result socialproof.TestimonialsResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Error != "" || len(result.Testimonials) != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("health: status %d body %q", rec.Code, rec.Body.String())
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header func(*http.Request)
		want   string
	}{
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, "abc"},
		{"bearer case insensitive", func(r *http.Request) { r.Header.Set("Authorization", "bearer abc") }, "abc"},
		{"api key", func(r *http.Request) { r.Header.Set("X-API-Key", "xyz") }, "xyz"},
		{"basic scheme ignored", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }, ""},
		{"no headers", func(*http.Request) {}, ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		tt.header(req)
		if got := extractToken(req); got != tt.want {
			t.Errorf("%s: extractToken = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestServer_GracefulShutdown(t *testing.T) {
	s := newTestServer(t)
	s.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
