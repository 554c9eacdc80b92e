package domain

import "sort"

// LeaderboardSize caps how many entries the board retains.
const LeaderboardSize = 10

// RankEntries appends entry, re-sorts descending by score and trims to
// LeaderboardSize. The sort is stable so ties keep insertion order.
func RankEntries(entries []LeaderboardEntry, entry LeaderboardEntry) []LeaderboardEntry {
	ranked := make([]LeaderboardEntry, 0, len(entries)+1)
	ranked = append(ranked, entries...)
	ranked = append(ranked, entry)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > LeaderboardSize {
		ranked = ranked[:LeaderboardSize]
	}
	return ranked
}
