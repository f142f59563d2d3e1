package keeper

import (
	"context"
	"math"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"snakegame/x/snake/types"
)

// InitializePlayer creates the record for owner at its derived address.
func (k Keeper) InitializePlayer(ctx context.Context, owner sdk.AccAddress, displayName string) (types.PlayerRecord, error) {
	if err := types.ValidateIdentity(owner); err != nil {
		return types.PlayerRecord{}, err
	}
	if err := types.ValidateDisplayName(displayName); err != nil {
		return types.PlayerRecord{}, err
	}

	addr := types.DerivePlayerAddress(owner)
	exists, err := k.Players.Has(ctx, addr)
	if err != nil {
		return types.PlayerRecord{}, err
	}
	if exists {
		return types.PlayerRecord{}, errorsmod.Wrapf(types.ErrAlreadyExists, "player record %s", addr)
	}

	player := types.NewPlayerRecord(owner, displayName)
	if err := k.Players.Set(ctx, addr, player); err != nil {
		return types.PlayerRecord{}, err
	}
	return player, nil
}

// SubmitScore records a finished game on owner's record. signer must own it.
// It reports whether score became the new high score.
func (k Keeper) SubmitScore(ctx context.Context, signer, owner sdk.AccAddress, score uint32) (types.PlayerRecord, bool, error) {
	player, err := k.GetPlayer(ctx, owner)
	if err != nil {
		return types.PlayerRecord{}, false, err
	}
	if err := VerifyOwner(signer, player.Owner); err != nil {
		return types.PlayerRecord{}, false, err
	}
	if player.GamesPlayed == math.MaxUint32 {
		return types.PlayerRecord{}, false, errorsmod.Wrap(types.ErrInvalidRequest, "games played counter exhausted")
	}

	newHigh := player.RecordScore(score)
	if err := k.Players.Set(ctx, types.DerivePlayerAddress(owner), player); err != nil {
		return types.PlayerRecord{}, false, err
	}
	return player, newHigh, nil
}
