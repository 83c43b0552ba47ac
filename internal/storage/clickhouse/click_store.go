package clickhouse

import (
	"context"
	"fmt"
	"time"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// ClickStore implements storage.ClickStore using ClickHouse. The click log
// is analytical: high write volume, windowed counts on read.
type ClickStore struct {
	conn *Conn
}

// NewClickStore creates a new ClickStore.
func NewClickStore(conn *Conn) *ClickStore {
	return &ClickStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ClickStore = (*ClickStore)(nil)

// Insert appends a new click event.
func (s *ClickStore) Insert(ctx context.Context, c *domain.ClickEvent) error {
	if c == nil || c.LinkID == "" {
		return storage.ErrInvalidInput
	}

	query := `INSERT INTO click_events (id, link_id, clicked_at) VALUES (?, ?, ?)`
	if err := s.conn.Exec(ctx, query, c.ID, c.LinkID, c.ClickedAt.UTC()); err != nil {
		return fmt.Errorf("insert click event: %w", err)
	}
	return nil
}

// CountSince counts clicks across the given links with ClickedAt >= since.
func (s *ClickStore) CountSince(ctx context.Context, linkIDs []string, since time.Time) (int, error) {
	if len(linkIDs) == 0 {
		return 0, nil
	}

	query := `
		SELECT count()
		FROM click_events
		WHERE link_id IN (?) AND clicked_at >= ?
	`

	var count uint64
	if err := s.conn.QueryRow(ctx, query, linkIDs, since.UTC()).Scan(&count); err != nil {
		return 0, fmt.Errorf("count clicks since: %w", err)
	}
	return int(count), nil
}

// HourlyCounts returns click counts bucketed by hour of day (0..23, UTC)
// for clicks on the given links with ClickedAt >= since.
func (s *ClickStore) HourlyCounts(ctx context.Context, linkIDs []string, since time.Time) ([24]int64, error) {
	var buckets [24]int64
	if len(linkIDs) == 0 {
		return buckets, nil
	}

	query := `
		SELECT toHour(clicked_at) AS hour, count() AS clicks
		FROM click_events
		WHERE link_id IN (?) AND clicked_at >= ?
		GROUP BY hour
	`

	rows, err := s.conn.Query(ctx, query, linkIDs, since.UTC())
	if err != nil {
		return buckets, fmt.Errorf("hourly click counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			hour   uint8
			clicks uint64
		)
		if err := rows.Scan(&hour, &clicks); err != nil {
			return buckets, fmt.Errorf("scan hourly count: %w", err)
		}
		if hour < 24 {
			buckets[hour] = int64(clicks)
		}
	}
	if err := rows.Err(); err != nil {
		return buckets, fmt.Errorf("iterate hourly counts: %w", err)
	}

	return buckets, nil
}
