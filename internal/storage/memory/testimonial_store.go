package memory

import (
	"context"
	"sort"
	"sync"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// TestimonialStore is an in-memory implementation of storage.TestimonialStore.
type TestimonialStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Testimonial
}

// NewTestimonialStore creates a new in-memory testimonial store.
func NewTestimonialStore() *TestimonialStore {
	return &TestimonialStore{
		data: make(map[string]*domain.Testimonial),
	}
}

// Insert adds a new testimonial. Returns ErrDuplicateKey if the ID exists.
func (s *TestimonialStore) Insert(_ context.Context, t *domain.Testimonial) error {
	if t == nil || t.ID == "" || t.CampaignID == "" {
		return storage.ErrInvalidInput
	}
	if t.Rating < 1 || t.Rating > 5 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[t.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *t
	s.data[t.ID] = &copy
	return nil
}

// GetByCampaignID retrieves all testimonials for a campaign, ordered by ID ASC.
func (s *TestimonialStore) GetByCampaignID(_ context.Context, campaignID string) ([]*domain.Testimonial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Testimonial
	for _, t := range s.data {
		if t.CampaignID == campaignID {
			copy := *t
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

var _ storage.TestimonialStore = (*TestimonialStore)(nil)
