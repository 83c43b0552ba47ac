package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"campaign-monetization/internal/pricing"
)

// DefaultSnapshotTTL bounds how stale a cached market snapshot may be.
const DefaultSnapshotTTL = 15 * time.Minute

// MarketCache is a caching decorator around a pricing.MarketSource. Market
// snapshots are stored as JSON at "market:{url}" with a TTL, so repeated
// competitor checks within the TTL do not hit the upstream source. Cache
// failures fall through to the upstream source; a broken cache must never
// break monitoring.
type MarketCache struct {
	rdb    *redis.Client
	source pricing.MarketSource
	ttl    time.Duration
	logger *slog.Logger
}

// NewMarketCache creates a MarketCache backed by the given Client.
func NewMarketCache(c *Client, source pricing.MarketSource, ttl time.Duration, logger *slog.Logger) *MarketCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &MarketCache{
		rdb:    c.Underlying(),
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

func marketKey(productURL string) string {
	return "market:" + productURL
}

// Snapshot returns the cached snapshot for productURL, or fetches it from
// the upstream source and caches it.
func (m *MarketCache) Snapshot(ctx context.Context, productURL string) (pricing.MarketSnapshot, error) {
	key := marketKey(productURL)

	data, err := m.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var snap pricing.MarketSnapshot
		if jsonErr := json.Unmarshal(data, &snap); jsonErr == nil {
			return snap, nil
		}
		// Corrupt entry: drop it and refetch.
		_ = m.rdb.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		m.logger.WarnContext(ctx, "market cache read failed",
			slog.String("url", productURL), slog.String("error", err.Error()))
	}

	snap, err := m.source.Snapshot(ctx, productURL)
	if err != nil {
		return pricing.MarketSnapshot{}, fmt.Errorf("upstream market source: %w", err)
	}

	if data, err := json.Marshal(snap); err == nil {
		if err := m.rdb.Set(ctx, key, data, m.ttl).Err(); err != nil {
			m.logger.WarnContext(ctx, "market cache write failed",
				slog.String("url", productURL), slog.String("error", err.Error()))
		}
	}

	return snap, nil
}

var _ pricing.MarketSource = (*MarketCache)(nil)
