package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-monetization/internal/domain"

	"campaign-monetization/internal/storage"
	. "campaign-monetization/internal/storage/postgres"
)

func TestProofEventStore_InsertAndGetRecent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewProofEventStore(pool)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	event := &domain.ProofEvent{
		ID:          "ev-001",
		CampaignID:  "camp-1",
		EventType:   domain.EventTypePurchase,
		ProductName: "Starter Kit",
		Country:     "Germany",
		Amount:      49.99,
		CreatedAt:   base,
	}

	err := store.Insert(ctx, event)
	require.NoError(t, err)

	err = store.Insert(ctx, event)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	result, err := store.GetRecentByCampaign(ctx, "camp-1", 10)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, event.ID, result[0].ID)
	assert.Equal(t, event.EventType, result[0].EventType)
	assert.Equal(t, event.ProductName, result[0].ProductName)
	assert.Equal(t, event.Country, result[0].Country)
	assert.Equal(t, event.Amount, result[0].Amount)
	assert.True(t, event.CreatedAt.Equal(result[0].CreatedAt))
}

func TestProofEventStore_OrderingAndLimit(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewProofEventStore(pool)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	// Insert oldest first; reads must come back newest first.
	for i := 0; i < 5; i++ {
		err := store.Insert(ctx, &domain.ProofEvent{
			ID:         fmt.Sprintf("ev-%03d", i),
			CampaignID: "camp-1",
			EventType:  domain.EventTypeSignup,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	result, err := store.GetRecentByCampaign(ctx, "camp-1", 3)
	require.NoError(t, err)

	require.Len(t, result, 3)
	assert.Equal(t, "ev-004", result[0].ID)
	assert.Equal(t, "ev-003", result[1].ID)
	assert.Equal(t, "ev-002", result[2].ID)
}

func TestProofEventStore_TieBreakByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewProofEventStore(pool)
	ctx := context.Background()
	at := time.Now().UTC().Truncate(time.Microsecond)

	for _, id := range []string{"ev-b", "ev-a", "ev-c"} {
		err := store.Insert(ctx, &domain.ProofEvent{
			ID:         id,
			CampaignID: "camp-1",
			EventType:  domain.EventTypeSignup,
			CreatedAt:  at,
		})
		require.NoError(t, err)
	}

	result, err := store.GetRecentByCampaign(ctx, "camp-1", 10)
	require.NoError(t, err)

	require.Len(t, result, 3)
	assert.Equal(t, "ev-c", result[0].ID)
	assert.Equal(t, "ev-b", result[1].ID)
	assert.Equal(t, "ev-a", result[2].ID)
}

func TestProofEventStore_CampaignIsolation(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewProofEventStore(pool)
	ctx := context.Background()
	at := time.Now().UTC()

	require.NoError(t, store.Insert(ctx, &domain.ProofEvent{
		ID: "ev-1", CampaignID: "camp-1", EventType: domain.EventTypePurchase, CreatedAt: at,
	}))
	require.NoError(t, store.Insert(ctx, &domain.ProofEvent{
		ID: "ev-2", CampaignID: "camp-2", EventType: domain.EventTypePurchase, CreatedAt: at,
	}))

	result, err := store.GetRecentByCampaign(ctx, "camp-1", 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "ev-1", result[0].ID)

	empty, err := store.GetRecentByCampaign(ctx, "camp-3", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProofEventStore_InvalidLimit(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewProofEventStore(pool)

	_, err := store.GetRecentByCampaign(context.Background(), "camp-1", 0)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
