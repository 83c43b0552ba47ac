package memory

import (
	"context"
	"sort"
	"sync"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// LinkStore is an in-memory implementation of storage.LinkStore.
type LinkStore struct {
	mu   sync.RWMutex
	data map[string]*domain.AffiliateLink
}

// NewLinkStore creates a new in-memory link store.
func NewLinkStore() *LinkStore {
	return &LinkStore{
		data: make(map[string]*domain.AffiliateLink),
	}
}

// Insert adds a new link. Returns ErrDuplicateKey if the ID exists.
func (s *LinkStore) Insert(_ context.Context, l *domain.AffiliateLink) error {
	if l == nil || l.ID == "" || l.OwnerID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[l.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *l
	s.data[l.ID] = &copy
	return nil
}

// ListByOwner retrieves the IDs of all links owned by a user, sorted ASC.
func (s *LinkStore) ListByOwner(_ context.Context, ownerID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for _, l := range s.data {
		if l.OwnerID == ownerID {
			ids = append(ids, l.ID)
		}
	}

	sort.Strings(ids)
	return ids, nil
}

var _ storage.LinkStore = (*LinkStore)(nil)
