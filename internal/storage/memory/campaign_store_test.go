package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

func TestCampaignStore_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewCampaignStore()

	campaign := &domain.Campaign{
		ID:      "camp-1",
		OwnerID: "user-1",
		Name:    "Launch",
		Status:  domain.CampaignStatusActive,
	}
	if err := store.Insert(ctx, campaign); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, campaign); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("duplicate insert: got %v, want ErrDuplicateKey", err)
	}

	got, err := store.GetByID(ctx, "camp-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Launch" || got.OwnerID != "user-1" {
		t.Errorf("unexpected campaign: %+v", got)
	}

	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing campaign: got %v, want ErrNotFound", err)
	}
}

func TestCampaignStore_GetByOwner(t *testing.T) {
	ctx := context.Background()
	store := NewCampaignStore()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"camp-b", "camp-a", "camp-c"} {
		err := store.Insert(ctx, &domain.Campaign{
			ID:        id,
			OwnerID:   "user-1",
			Status:    domain.CampaignStatusActive,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	err := store.Insert(ctx, &domain.Campaign{ID: "other", OwnerID: "user-2", CreatedAt: base})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByOwner(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetByOwner failed: %v", err)
	}
	want := []string{"camp-b", "camp-a", "camp-c"} // creation order
	if len(got) != len(want) {
		t.Fatalf("expected %d campaigns, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}
