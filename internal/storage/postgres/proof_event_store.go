package postgres

import (
	"context"
	"fmt"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// ProofEventStore implements storage.ProofEventStore using PostgreSQL.
type ProofEventStore struct {
	pool *Pool
}

// NewProofEventStore creates a new ProofEventStore.
func NewProofEventStore(pool *Pool) *ProofEventStore {
	return &ProofEventStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ProofEventStore = (*ProofEventStore)(nil)

// Insert appends a new event. Returns ErrDuplicateKey if the ID exists.
func (s *ProofEventStore) Insert(ctx context.Context, e *domain.ProofEvent) error {
	query := `
		INSERT INTO proof_events (id, campaign_id, event_type, product_name, country, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		e.ID, e.CampaignID, e.EventType, e.ProductName, e.Country, e.Amount, e.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert proof event: %w", err)
	}
	return nil
}

// GetRecentByCampaign retrieves up to limit events for a campaign,
// ordered by CreatedAt DESC (newest first).
func (s *ProofEventStore) GetRecentByCampaign(ctx context.Context, campaignID string, limit int) ([]*domain.ProofEvent, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT id, campaign_id, event_type, product_name, country, amount, created_at
		FROM proof_events
		WHERE campaign_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, campaignID, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent proof events: %w", err)
	}
	defer rows.Close()

	var result []*domain.ProofEvent
	for rows.Next() {
		var e domain.ProofEvent
		if err := rows.Scan(&e.ID, &e.CampaignID, &e.EventType, &e.ProductName, &e.Country, &e.Amount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan proof event: %w", err)
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proof events: %w", err)
	}
	return result, nil
}
