package memory

import (
	"context"
	"sort"
	"sync"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// ProofEventStore is an in-memory implementation of storage.ProofEventStore.
type ProofEventStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ProofEvent
}

// NewProofEventStore creates a new in-memory proof event store.
func NewProofEventStore() *ProofEventStore {
	return &ProofEventStore{
		data: make(map[string]*domain.ProofEvent),
	}
}

// Insert appends a new event. Returns ErrDuplicateKey if the ID exists.
func (s *ProofEventStore) Insert(_ context.Context, e *domain.ProofEvent) error {
	if e == nil || e.ID == "" || e.CampaignID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[e.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *e
	s.data[e.ID] = &copy
	return nil
}

// GetRecentByCampaign retrieves up to limit events for a campaign,
// ordered by CreatedAt DESC (newest first). Ties break by ID DESC so
// repeated reads are deterministic.
func (s *ProofEventStore) GetRecentByCampaign(_ context.Context, campaignID string, limit int) ([]*domain.ProofEvent, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ProofEvent
	for _, e := range s.data {
		if e.CampaignID == campaignID {
			copy := *e
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	if len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

var _ storage.ProofEventStore = (*ProofEventStore)(nil)
