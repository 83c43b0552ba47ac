package postgres

import (
	"context"
	"fmt"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// LinkStore implements storage.LinkStore using PostgreSQL.
type LinkStore struct {
	pool *Pool
}

// NewLinkStore creates a new LinkStore.
func NewLinkStore(pool *Pool) *LinkStore {
	return &LinkStore{pool: pool}
}

// Compile-time interface check.
var _ storage.LinkStore = (*LinkStore)(nil)

// Insert adds a new link. Returns ErrDuplicateKey if the ID exists.
func (s *LinkStore) Insert(ctx context.Context, l *domain.AffiliateLink) error {
	query := `
		INSERT INTO affiliate_links (id, owner_id, campaign_id, url, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query, l.ID, l.OwnerID, l.CampaignID, l.URL, l.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert affiliate link: %w", err)
	}
	return nil
}

// ListByOwner retrieves the IDs of all links owned by a user, sorted ASC.
func (s *LinkStore) ListByOwner(ctx context.Context, ownerID string) ([]string, error) {
	query := `
		SELECT id
		FROM affiliate_links
		WHERE owner_id = $1
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list links by owner: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan link id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate link ids: %w", err)
	}
	return ids, nil
}
