package types

import (
	"sort"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// NewLeaderboard returns an empty leaderboard administered by admin.
func NewLeaderboard(admin sdk.AccAddress) Leaderboard {
	return Leaderboard{Administrator: admin, Entries: []LeaderboardEntry{}}
}

// EntryFromRecord snapshots a player record for the leaderboard.
func EntryFromRecord(p PlayerRecord) LeaderboardEntry {
	return LeaderboardEntry{Player: p.Owner, DisplayName: p.DisplayName, Score: p.HighScore}
}

// Merge appends entry, re-ranks descending by score and truncates to the
// first MaxLeaderboardSize entries. Ties keep their prior relative order, so
// a newly merged entry ranks below existing entries with the same score.
//
// Entries are not deduplicated by player: merging the same player twice
// yields two entries unless truncation evicts one.
//
// It returns the 1-based rank of the merged entry, or 0 when it was evicted.
func (l *Leaderboard) Merge(entry LeaderboardEntry) int {
	entries := make([]LeaderboardEntry, 0, len(l.Entries)+1)
	entries = append(entries, l.Entries...)
	entries = append(entries, entry)
	newIdx := len(entries) - 1

	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return entries[idx[a]].Score > entries[idx[b]].Score
	})

	if len(idx) > MaxLeaderboardSize {
		idx = idx[:MaxLeaderboardSize]
	}

	rank := 0
	ranked := make([]LeaderboardEntry, len(idx))
	for pos, i := range idx {
		ranked[pos] = entries[i]
		if i == newIdx {
			rank = pos + 1
		}
	}
	l.Entries = ranked
	return rank
}

// RanksOf returns the 1-based positions held by player.
func (l Leaderboard) RanksOf(player sdk.AccAddress) []uint32 {
	var ranks []uint32
	for i, e := range l.Entries {
		if e.Player.Equals(player) {
			ranks = append(ranks, uint32(i+1))
		}
	}
	return ranks
}

// Validate checks the size and ordering invariants.
func (l Leaderboard) Validate() error {
	if err := ValidateIdentity(l.Administrator); err != nil {
		return err
	}
	if len(l.Entries) > MaxLeaderboardSize {
		return ErrSerializationOverflow.Wrapf("%d entries, max %d", len(l.Entries), MaxLeaderboardSize)
	}
	for i, e := range l.Entries {
		if err := ValidateIdentity(e.Player); err != nil {
			return err
		}
		if err := ValidateDisplayName(e.DisplayName); err != nil {
			return err
		}
		if i > 0 && l.Entries[i-1].Score < e.Score {
			return ErrInvalidRequest.Wrapf("entry %d out of order", i)
		}
	}
	return nil
}
