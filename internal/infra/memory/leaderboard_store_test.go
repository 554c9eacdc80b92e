package memory

import (
	"context"
	"testing"

	"brainblitz-service/internal/domain"
)

func TestLeaderboardStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewLeaderboardStore()

	entries, err := store.Load(ctx)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty board, got %v entries err=%v", entries, err)
	}

	saved := []domain.LeaderboardEntry{
		{ID: "a", DisplayName: "Alice", Score: 80},
		{ID: "b", DisplayName: "Bob", Score: 60},
	}
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 2 || entries[0].DisplayName != "Alice" {
		t.Fatalf("unexpected board: %+v", entries)
	}

	// Loaded slice is a copy; mutating it must not leak into the store.
	entries[0].DisplayName = "Mallory"
	again, _ := store.Load(ctx)
	if again[0].DisplayName != "Alice" {
		t.Fatalf("store leaked internal slice")
	}
}
