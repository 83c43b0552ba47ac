// Package main seeds a demo campaign with products, links, proof events and
// clicks so the server has data to serve in local runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage/migrations"
	pgstore "campaign-monetization/internal/storage/postgres"
)

func main() {
	postgresDSN := flag.String("postgres-dsn", os.Getenv("MONETIZE_POSTGRES_DSN"), "PostgreSQL connection string")
	ownerID := flag.String("owner", "demo-user", "Owner user ID for the seeded campaign")
	events := flag.Int("events", 8, "Number of proof events to seed")
	flag.Parse()

	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags)

	if *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required")
	}

	ctx := context.Background()

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seed(ctx, pool, *ownerID, *events); err != nil {
		logger.Fatalf("Seed failed: %v", err)
	}

	logger.Println("Seed complete")
}

func seed(ctx context.Context, pool *pgstore.Pool, ownerID string, eventCount int) error {
	campaigns := pgstore.NewCampaignStore(pool)
	products := pgstore.NewProductStore(pool)
	links := pgstore.NewLinkStore(pool)
	proofEvents := pgstore.NewProofEventStore(pool)
	testimonials := pgstore.NewTestimonialStore(pool)

	now := time.Now()

	campaign := &domain.Campaign{
		ID:        "camp-demo",
		OwnerID:   ownerID,
		Name:      "Demo Campaign",
		Status:    domain.CampaignStatusActive,
		CreatedAt: now,
	}
	if err := campaigns.Insert(ctx, campaign); err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}

	demoProducts := []*domain.Product{
		{
			ID:           "prod-starter",
			CampaignID:   campaign.ID,
			Name:         "Starter Kit",
			ReferenceURL: "https://example.com/products/starter-kit",
			CurrentPrice: 49.99,
			BaseRevenue:  8200,
		},
		{
			ID:           "prod-pro",
			CampaignID:   campaign.ID,
			Name:         "Pro Bundle",
			ReferenceURL: "https://example.com/products/pro-bundle",
			CurrentPrice: 99.99,
			BaseRevenue:  12500,
		},
	}
	for _, p := range demoProducts {
		if err := products.Insert(ctx, p); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}

	link := &domain.AffiliateLink{
		ID:         "link-demo",
		OwnerID:    ownerID,
		CampaignID: campaign.ID,
		URL:        "https://example.com/r/demo",
		CreatedAt:  now,
	}
	if err := links.Insert(ctx, link); err != nil {
		return fmt.Errorf("insert link: %w", err)
	}

	countries := []string{"Germany", "France", "", "United States"}
	for i := 0; i < eventCount; i++ {
		product := demoProducts[i%len(demoProducts)]
		event := &domain.ProofEvent{
			ID:          uuid.NewString(),
			CampaignID:  campaign.ID,
			EventType:   demoEventType(i),
			ProductName: product.Name,
			Country:     countries[i%len(countries)],
			Amount:      product.CurrentPrice,
			CreatedAt:   now.Add(-time.Duration(i*7) * time.Minute),
		}
		if err := proofEvents.Insert(ctx, event); err != nil {
			return fmt.Errorf("insert proof event: %w", err)
		}
	}

	demoTestimonials := []*domain.Testimonial{
		{ID: "tst-1", CampaignID: campaign.ID, Author: "Mara K.", Content: "Doubled my conversions in a week.", Rating: 5, Verified: true},
		{ID: "tst-2", CampaignID: campaign.ID, Author: "Jonas B.", Content: "Setup took five minutes.", Rating: 4, Verified: true},
		{ID: "tst-3", CampaignID: campaign.ID, Author: "Priya S.", Content: "The surge schedule paid for itself.", Rating: 5, Verified: false},
	}
	for _, t := range demoTestimonials {
		if err := testimonials.Insert(ctx, t); err != nil {
			return fmt.Errorf("insert testimonial %s: %w", t.ID, err)
		}
	}

	return nil
}

func demoEventType(i int) string {
	switch i % 3 {
	case 0:
		return domain.EventTypePurchase
	case 1:
		return domain.EventTypeSignup
	default:
		return domain.EventTypeCartAdd
	}
}
