package memory

import (
	"context"
	"sync"
	"time"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// ClickStore is an in-memory implementation of storage.ClickStore.
// Clicks are stored in insertion order; reads scan and filter, which is
// fine for the volumes this store is used for (tests and local runs).
type ClickStore struct {
	mu     sync.RWMutex
	clicks []domain.ClickEvent
}

// NewClickStore creates a new in-memory click store.
func NewClickStore() *ClickStore {
	return &ClickStore{}
}

// Insert appends a new click event.
func (s *ClickStore) Insert(_ context.Context, c *domain.ClickEvent) error {
	if c == nil || c.LinkID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.clicks = append(s.clicks, *c)
	return nil
}

// CountSince counts clicks across the given links with ClickedAt >= since.
func (s *ClickStore) CountSince(_ context.Context, linkIDs []string, since time.Time) (int, error) {
	wanted := make(map[string]struct{}, len(linkIDs))
	for _, id := range linkIDs {
		wanted[id] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for i := range s.clicks {
		c := &s.clicks[i]
		if _, ok := wanted[c.LinkID]; !ok {
			continue
		}
		if !c.ClickedAt.Before(since) {
			count++
		}
	}

	return count, nil
}

// HourlyCounts returns click counts bucketed by hour of day (0..23, UTC)
// for clicks on the given links with ClickedAt >= since.
func (s *ClickStore) HourlyCounts(_ context.Context, linkIDs []string, since time.Time) ([24]int64, error) {
	var buckets [24]int64

	wanted := make(map[string]struct{}, len(linkIDs))
	for _, id := range linkIDs {
		wanted[id] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.clicks {
		c := &s.clicks[i]
		if _, ok := wanted[c.LinkID]; !ok {
			continue
		}
		if c.ClickedAt.Before(since) {
			continue
		}
		buckets[c.ClickedAt.UTC().Hour()]++
	}

	return buckets, nil
}

var _ storage.ClickStore = (*ClickStore)(nil)
