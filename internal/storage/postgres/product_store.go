package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

// ProductStore implements storage.ProductStore using PostgreSQL.
type ProductStore struct {
	pool *Pool
}

// NewProductStore creates a new ProductStore.
func NewProductStore(pool *Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ProductStore = (*ProductStore)(nil)

// Insert adds a new product. Returns ErrDuplicateKey if the ID exists.
func (s *ProductStore) Insert(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, campaign_id, name, reference_url, current_price, base_revenue)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		p.ID, p.CampaignID, p.Name, p.ReferenceURL, p.CurrentPrice, p.BaseRevenue,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by its ID. Returns ErrNotFound if not exists.
func (s *ProductStore) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `
		SELECT id, campaign_id, name, reference_url, current_price, base_revenue
		FROM products
		WHERE id = $1
	`

	var p domain.Product
	err := s.pool.QueryRow(ctx, query, productID).Scan(
		&p.ID, &p.CampaignID, &p.Name, &p.ReferenceURL, &p.CurrentPrice, &p.BaseRevenue,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return &p, nil
}

// GetByCampaignID retrieves all products for a campaign, ordered by ID ASC.
func (s *ProductStore) GetByCampaignID(ctx context.Context, campaignID string) ([]*domain.Product, error) {
	query := `
		SELECT id, campaign_id, name, reference_url, current_price, base_revenue
		FROM products
		WHERE campaign_id = $1
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("get products by campaign: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]*domain.Product, error) {
	var result []*domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.CampaignID, &p.Name, &p.ReferenceURL, &p.CurrentPrice, &p.BaseRevenue); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return result, nil
}
