package types

import "cosmossdk.io/collections"

const (
	// ModuleName defines the module name
	ModuleName = "snake"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey is the message route for the module
	RouterKey = ModuleName
)

// Derivation seeds for record addresses.
const (
	PlayerSeed      = "player"
	LeaderboardSeed = "leaderboard"
)

// Fixed size budgets of the persisted records.
const (
	IdentitySize       = 32
	DiscriminatorSize  = 8
	MaxDisplayNameLen  = 32
	MaxLeaderboardSize = 10

	// PlayerRecordSpace is discriminator + owner + name(len prefix + max) + high score + games played.
	PlayerRecordSpace = DiscriminatorSize + IdentitySize + 4 + MaxDisplayNameLen + 4 + 4
	// LeaderboardEntrySpace is player + name(len prefix + max) + score.
	LeaderboardEntrySpace = IdentitySize + 4 + MaxDisplayNameLen + 4
	// LeaderboardSpace is discriminator + administrator + entry count + bounded entries.
	LeaderboardSpace = DiscriminatorSize + IdentitySize + 4 + MaxLeaderboardSize*LeaderboardEntrySpace
)

var (
	PlayersKeyPrefix      = collections.NewPrefix("sn_players")
	LeaderboardsKeyPrefix = collections.NewPrefix("sn_leaderboard")
)
