// Package main runs the monetization service: the pricing optimization and
// social proof aggregation facades behind one HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campaign-monetization/internal/cache/redis"
	"campaign-monetization/internal/config"
	"campaign-monetization/internal/identity"
	"campaign-monetization/internal/pricing"
	"campaign-monetization/internal/server"
	"campaign-monetization/internal/socialproof"
	"campaign-monetization/internal/storage"
	chstore "campaign-monetization/internal/storage/clickhouse"
	"campaign-monetization/internal/storage/memory"
	"campaign-monetization/internal/storage/migrations"
	pgstore "campaign-monetization/internal/storage/postgres"
)

// allStores holds all storage implementations.
type allStores struct {
	campaigns    storage.CampaignStore
	products     storage.ProductStore
	proofEvents  storage.ProofEventStore
	links        storage.LinkStore
	clicks       storage.ClickStore
	testimonials storage.TestimonialStore
}

func main() {
	configPath := flag.String("config", os.Getenv("MONETIZE_CONFIG"), "Path to TOML config file")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid config: %v", err)
	}

	if !*useMemory && (cfg.Postgres.DSN == "" || cfg.Clickhouse.DSN == "") {
		logger.Fatal("postgres.dsn and clickhouse.dsn are required (use --use-memory for in-memory storage)")
	}

	slogger := newLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, cleanup, err := createStores(ctx, cfg, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	marketSource, marketCleanup, err := createMarketSource(ctx, cfg, slogger)
	if err != nil {
		logger.Fatalf("Failed to create market source: %v", err)
	}
	defer marketCleanup()

	resolver := identity.ContextResolver{}

	model := &pricing.ElasticityModel{
		Elasticity: cfg.Pricing.Elasticity,
		MaxMove:    cfg.Pricing.MaxMove,
		Steps:      60,
	}
	engine := pricing.NewEngine(stores.products, stores.proofEvents, model)
	monitor := pricing.NewMonitor(marketSource)
	classifier := pricing.NewClickProfileClassifier(stores.campaigns, stores.links, stores.clicks)
	scheduler := pricing.NewScheduler(stores.products, classifier)
	pricingSvc := pricing.NewService(engine, monitor, scheduler, resolver, slogger)

	aggregator := socialproof.NewAggregator(stores.proofEvents)
	visitors := socialproof.NewVisitorEstimator(stores.links, stores.clicks)
	proofSvc := socialproof.NewService(aggregator, visitors, resolver,
		stores.proofEvents, stores.clicks, stores.testimonials, slogger)

	srv := server.New(*cfg, pricingSvc, proofSvc, slogger)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		}
	}()

	if err := srv.Run(ctx); err != nil && err != context.Canceled {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// newLogger builds the structured logger used by services and middleware.
func newLogger(level string) *slog.Logger {
	var lv slog.Level
	switch level {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lv}))
}

// createStores creates all required stores.
func createStores(ctx context.Context, cfg *config.Config, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		stores := &allStores{
			campaigns:    memory.NewCampaignStore(),
			products:     memory.NewProductStore(),
			proofEvents:  memory.NewProofEventStore(),
			links:        memory.NewLinkStore(),
			clicks:       memory.NewClickStore(),
			testimonials: memory.NewTestimonialStore(),
		}
		return stores, func() {}, nil
	}

	// PostgreSQL: campaigns, products, links, proof events, testimonials
	pool, err := pgstore.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if cfg.Postgres.RunMigrations {
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
		}
	}

	// ClickHouse: click analytics
	chConn, err := chstore.NewConn(ctx, cfg.Clickhouse.DSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
	}
	if cfg.Clickhouse.RunMigrations {
		if err := migrations.RunClickhouseMigrations(ctx, chConn); err != nil {
			chConn.Close()
			pool.Close()
			return nil, nil, fmt.Errorf("run clickhouse migrations: %w", err)
		}
	}

	stores := &allStores{
		campaigns:    pgstore.NewCampaignStore(pool),
		products:     pgstore.NewProductStore(pool),
		proofEvents:  pgstore.NewProofEventStore(pool),
		links:        pgstore.NewLinkStore(pool),
		testimonials: pgstore.NewTestimonialStore(pool),
		clicks:       chstore.NewClickStore(chConn),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}

// createMarketSource builds the competitor market source, wrapped in the
// redis cache when enabled.
func createMarketSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (pricing.MarketSource, func(), error) {
	base := demoMarketSource()

	if !cfg.Redis.Enabled {
		return base, func() {}, nil
	}

	client, err := redis.New(ctx, redis.ClientConfig{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		PoolSize:   cfg.Redis.PoolSize,
		MaxRetries: cfg.Redis.MaxRetries,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}

	cached := redis.NewMarketCache(client, base, cfg.Redis.SnapshotTTL, logger)
	return cached, func() { client.Close() }, nil
}

// demoMarketSource is the fixture source used until a vendor feed is wired.
func demoMarketSource() pricing.MarketSource {
	return &pricing.StaticMarketSource{
		Snapshots: map[string]pricing.MarketSnapshot{
			"https://example.com/products/starter-kit": {
				YourPrice:        49.99,
				CompetitorPrices: []float64{45.99, 52.99, 48.99, 54.99},
			},
			"https://example.com/products/pro-bundle": {
				YourPrice:        99.99,
				CompetitorPrices: []float64{104.99, 97.49, 109.99},
			},
		},
	}
}
