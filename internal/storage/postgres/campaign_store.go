package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// CampaignStore implements storage.CampaignStore using PostgreSQL.
type CampaignStore struct {
	pool *Pool
}

// NewCampaignStore creates a new CampaignStore.
func NewCampaignStore(pool *Pool) *CampaignStore {
	return &CampaignStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CampaignStore = (*CampaignStore)(nil)

// Insert adds a new campaign. Returns ErrDuplicateKey if the ID exists.
func (s *CampaignStore) Insert(ctx context.Context, c *domain.Campaign) error {
	query := `
		INSERT INTO campaigns (id, owner_id, name, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query, c.ID, c.OwnerID, c.Name, c.Status, c.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// GetByID retrieves a campaign by its ID. Returns ErrNotFound if not exists.
func (s *CampaignStore) GetByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	query := `
		SELECT id, owner_id, name, status, created_at
		FROM campaigns
		WHERE id = $1
	`

	var c domain.Campaign
	err := s.pool.QueryRow(ctx, query, campaignID).Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get campaign by id: %w", err)
	}
	return &c, nil
}

// GetByOwner retrieves all campaigns owned by a user, ordered by creation time ASC.
func (s *CampaignStore) GetByOwner(ctx context.Context, ownerID string) ([]*domain.Campaign, error) {
	query := `
		SELECT id, owner_id, name, status, created_at
		FROM campaigns
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get campaigns by owner: %w", err)
	}
	defer rows.Close()

	return scanCampaigns(rows)
}

func scanCampaigns(rows pgx.Rows) ([]*domain.Campaign, error) {
	var result []*domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}
	return result, nil
}
