package types

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

// Derive maps a seed and optional key to a module scoped address. The same
// inputs always produce the same address.
func Derive(seed string, keys ...[]byte) sdk.AccAddress {
	derivationKeys := make([][]byte, 0, len(keys)+1)
	derivationKeys = append(derivationKeys, []byte(seed))
	derivationKeys = append(derivationKeys, keys...)
	return address.Module(ModuleName, derivationKeys...)
}

// DerivePlayerAddress returns the address of the player record owned by owner.
func DerivePlayerAddress(owner sdk.AccAddress) sdk.AccAddress {
	return Derive(PlayerSeed, owner)
}

// DeriveLeaderboardAddress returns the address of the global leaderboard.
func DeriveLeaderboardAddress() sdk.AccAddress {
	return Derive(LeaderboardSeed)
}

// ValidateIdentity checks that id is a well formed 32-byte identity.
func ValidateIdentity(id sdk.AccAddress) error {
	if len(id) != IdentitySize {
		return errorsmod.Wrapf(ErrInvalidRequest, "identity must be %d bytes, got %d", IdentitySize, len(id))
	}
	return nil
}
