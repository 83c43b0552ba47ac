package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"campaign-monetization/internal/domain"
	"campaign-monetization/internal/storage"
)

func TestClickStore_CountSince(t *testing.T) {
	ctx := context.Background()
	store := NewClickStore()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	insert := func(id, linkID string, at time.Time) {
		t.Helper()
		if err := store.Insert(ctx, &domain.ClickEvent{ID: id, LinkID: linkID, ClickedAt: at}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	insert("c1", "link-1", now.Add(-time.Minute))
	insert("c2", "link-1", now.Add(-10*time.Minute))
	insert("c3", "link-2", now.Add(-time.Minute))
	insert("c4", "link-3", now.Add(-time.Minute)) // not in query set
	insert("c5", "link-1", now.Add(-5*time.Minute)) // exactly at the boundary

	count, err := store.CountSince(ctx, []string{"link-1", "link-2"}, now.Add(-5*time.Minute))
	if err != nil {
		t.Fatalf("CountSince failed: %v", err)
	}
	// c1, c3 inside the window; c5 at the boundary is inclusive.
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	count, err = store.CountSince(ctx, nil, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountSince failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count with no links = %d, want 0", count)
	}
}

func TestClickStore_HourlyCounts(t *testing.T) {
	ctx := context.Background()
	store := NewClickStore()
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	for hour, n := range map[int]int{9: 3, 14: 2, 23: 1} {
		for i := 0; i < n; i++ {
			err := store.Insert(ctx, &domain.ClickEvent{
				ID:        fmt.Sprintf("c-%d-%d", hour, i),
				LinkID:    "link-1",
				ClickedAt: day.Add(time.Duration(hour) * time.Hour),
			})
			if err != nil {
				t.Fatalf("Insert failed: %v", err)
			}
		}
	}

	buckets, err := store.HourlyCounts(ctx, []string{"link-1"}, day.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("HourlyCounts failed: %v", err)
	}

	var want [24]int64
	want[9] = 3
	want[14] = 2
	want[23] = 1
	if buckets != want {
		t.Errorf("buckets = %v, want %v", buckets, want)
	}

	// Outside the window everything drops out.
	buckets, err = store.HourlyCounts(ctx, []string{"link-1"}, day.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("HourlyCounts failed: %v", err)
	}
	if buckets != [24]int64{} {
		t.Errorf("expected empty buckets, got %v", buckets)
	}
}

func TestClickStore_InvalidInput(t *testing.T) {
	ctx := context.Background()
	store := NewClickStore()

	if err := store.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("nil click: got %v, want ErrInvalidInput", err)
	}
	if err := store.Insert(ctx, &domain.ClickEvent{ID: "c1"}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("missing link ID: got %v, want ErrInvalidInput", err)
	}
}
