package domain

import (
	"fmt"
	"testing"
)

func TestRankEntriesSortsAndCaps(t *testing.T) {
	var entries []LeaderboardEntry
	for i := 0; i < 15; i++ {
		entries = RankEntries(entries, LeaderboardEntry{
			ID:          fmt.Sprintf("id-%d", i),
			DisplayName: fmt.Sprintf("player-%d", i),
			Score:       (i * 13) % 101,
		})
	}

	if len(entries) != LeaderboardSize {
		t.Fatalf("expected %d entries, got %d", LeaderboardSize, len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Score > entries[i-1].Score {
			t.Fatalf("entries not sorted descending: %+v", entries)
		}
	}
}

func TestRankEntriesStableOnTies(t *testing.T) {
	entries := RankEntries(nil, LeaderboardEntry{ID: "a", Score: 50})
	entries = RankEntries(entries, LeaderboardEntry{ID: "b", Score: 50})
	entries = RankEntries(entries, LeaderboardEntry{ID: "c", Score: 50})

	if entries[0].ID != "a" || entries[1].ID != "b" || entries[2].ID != "c" {
		t.Fatalf("ties did not keep insertion order: %+v", entries)
	}
}
