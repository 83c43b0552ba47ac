package memory

import (
	"context"
	"sort"
	"sync"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// CampaignStore is an in-memory implementation of storage.CampaignStore.
type CampaignStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Campaign
}

// NewCampaignStore creates a new in-memory campaign store.
func NewCampaignStore() *CampaignStore {
	return &CampaignStore{
		data: make(map[string]*domain.Campaign),
	}
}

// Insert adds a new campaign. Returns ErrDuplicateKey if the ID exists.
func (s *CampaignStore) Insert(_ context.Context, c *domain.Campaign) error {
	if c == nil || c.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[c.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *c
	s.data[c.ID] = &copy
	return nil
}

// GetByID retrieves a campaign by its ID. Returns ErrNotFound if not exists.
func (s *CampaignStore) GetByID(_ context.Context, campaignID string) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.data[campaignID]
	if !ok {
		return nil, storage.ErrNotFound
	}

	copy := *c
	return &copy, nil
}

// GetByOwner retrieves all campaigns owned by a user, ordered by creation time ASC.
func (s *CampaignStore) GetByOwner(_ context.Context, ownerID string) ([]*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Campaign
	for _, c := range s.data {
		if c.OwnerID == ownerID {
			copy := *c
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

var _ storage.CampaignStore = (*CampaignStore)(nil)
