package postgres

import (
	"context"
	"fmt"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// TestimonialStore implements storage.TestimonialStore using PostgreSQL.
type TestimonialStore struct {
	pool *Pool
}

// NewTestimonialStore creates a new TestimonialStore.
func NewTestimonialStore(pool *Pool) *TestimonialStore {
	return &TestimonialStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TestimonialStore = (*TestimonialStore)(nil)

// Insert adds a new testimonial. Returns ErrDuplicateKey if the ID exists.
func (s *TestimonialStore) Insert(ctx context.Context, t *domain.Testimonial) error {
	if t.Rating < 1 || t.Rating > 5 {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO testimonials (id, campaign_id, author, content, rating, verified)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		t.ID, t.CampaignID, t.Author, t.Content, t.Rating, t.Verified,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert testimonial: %w", err)
	}
	return nil
}

// GetByCampaignID retrieves all testimonials for a campaign, ordered by ID ASC.
func (s *TestimonialStore) GetByCampaignID(ctx context.Context, campaignID string) ([]*domain.Testimonial, error) {
	query := `
		SELECT id, campaign_id, author, content, rating, verified
		FROM testimonials
		WHERE campaign_id = $1
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("get testimonials by campaign: %w", err)
	}
	defer rows.Close()

	var result []*domain.Testimonial
	for rows.Next() {
		var t domain.Testimonial
		if err := rows.Scan(&t.ID, &t.CampaignID, &t.Author, &t.Content, &t.Rating, &t.Verified); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate testimonials: %w", err)
	}
	return result, nil
}
