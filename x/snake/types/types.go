package types

import (
	"unicode/utf8"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PlayerRecord is the persistent per-owner score record.
type PlayerRecord struct {
	Owner       sdk.AccAddress `json:"owner"`
	DisplayName string         `json:"display_name"`
	HighScore   uint32         `json:"high_score"`
	GamesPlayed uint32         `json:"games_played"`
}

// LeaderboardEntry is a snapshot of a player's name and high score taken when
// the player was merged into the leaderboard.
type LeaderboardEntry struct {
	Player      sdk.AccAddress `json:"player"`
	DisplayName string         `json:"display_name"`
	Score       uint32         `json:"score"`
}

// Leaderboard is the global ranked list.
type Leaderboard struct {
	Administrator sdk.AccAddress     `json:"administrator"`
	Entries       []LeaderboardEntry `json:"entries"`
}

// NewPlayerRecord returns a fresh record with zeroed counters.
func NewPlayerRecord(owner sdk.AccAddress, displayName string) PlayerRecord {
	return PlayerRecord{Owner: owner, DisplayName: displayName}
}

// ValidateDisplayName enforces the encoded byte budget of a display name. The
// name must be valid UTF-8 so that it survives a JSON export unchanged.
func ValidateDisplayName(name string) error {
	if len(name) > MaxDisplayNameLen {
		return ErrCapacityExceeded.Wrapf("%d bytes, max %d", len(name), MaxDisplayNameLen)
	}
	if !utf8.ValidString(name) {
		return ErrInvalidRequest.Wrap("display name is not valid UTF-8")
	}
	return nil
}

// RecordScore applies one finished game to the record and reports whether the
// score set a new high score.
func (p *PlayerRecord) RecordScore(score uint32) bool {
	p.GamesPlayed++
	if score > p.HighScore {
		p.HighScore = score
		return true
	}
	return false
}

// Validate checks the record against its schema.
func (p PlayerRecord) Validate() error {
	if err := ValidateIdentity(p.Owner); err != nil {
		return err
	}
	return ValidateDisplayName(p.DisplayName)
}
