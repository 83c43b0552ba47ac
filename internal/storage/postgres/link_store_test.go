package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-monetization/internal/domain"

	"campaign-monetization/internal/storage"
	. "campaign-monetization/internal/storage/postgres"
)

func TestLinkStore_InsertAndListByOwner(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	seedCampaign(t, pool, "camp-1", "user-1")
	store := NewLinkStore(pool)
	ctx := context.Background()
	now := time.Now().UTC()

	links := []*domain.AffiliateLink{
		{ID: "link-b", OwnerID: "user-1", CampaignID: "camp-1", URL: "https://aff.example/b", CreatedAt: now},
		{ID: "link-a", OwnerID: "user-1", CampaignID: "camp-1", URL: "https://aff.example/a", CreatedAt: now},
		{ID: "link-c", OwnerID: "user-2", CampaignID: "camp-1", URL: "https://aff.example/c", CreatedAt: now},
	}
	for _, l := range links {
		require.NoError(t, store.Insert(ctx, l))
	}

	ids, err := store.ListByOwner(ctx, "user-1")
	require.NoError(t, err)

	// Sorted ASC, scoped to the owner.
	require.Len(t, ids, 2)
	assert.Equal(t, "link-a", ids[0])
	assert.Equal(t, "link-b", ids[1])

	empty, err := store.ListByOwner(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLinkStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	seedCampaign(t, pool, "camp-1", "user-1")
	store := NewLinkStore(pool)
	ctx := context.Background()

	link := &domain.AffiliateLink{
		ID:         "link-dup",
		OwnerID:    "user-1",
		CampaignID: "camp-1",
		URL:        "https://aff.example/dup",
		CreatedAt:  time.Now().UTC(),
	}

	require.NoError(t, store.Insert(ctx, link))
	assert.ErrorIs(t, store.Insert(ctx, link), storage.ErrDuplicateKey)
}
