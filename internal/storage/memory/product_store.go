package memory

import (
	"context"
	"sort"
	"sync"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// ProductStore is an in-memory implementation of storage.ProductStore.
type ProductStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Product
}

// NewProductStore creates a new in-memory product store.
func NewProductStore() *ProductStore {
	return &ProductStore{
		data: make(map[string]*domain.Product),
	}
}

// Insert adds a new product. Returns ErrDuplicateKey if the ID exists.
func (s *ProductStore) Insert(_ context.Context, p *domain.Product) error {
	if p == nil || p.ID == "" || p.CampaignID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[p.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *p
	s.data[p.ID] = &copy
	return nil
}

// GetByID retrieves a product by its ID. Returns ErrNotFound if not exists.
func (s *ProductStore) GetByID(_ context.Context, productID string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[productID]
	if !ok {
		return nil, storage.ErrNotFound
	}

	copy := *p
	return &copy, nil
}

// GetByCampaignID retrieves all products for a campaign, ordered by ID ASC.
func (s *ProductStore) GetByCampaignID(_ context.Context, campaignID string) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Product
	for _, p := range s.data {
		if p.CampaignID == campaignID {
			copy := *p
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

var _ storage.ProductStore = (*ProductStore)(nil)
