package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"snakegame/x/snake/types"
)

// InitializeLeaderboard creates the empty global leaderboard.
func (k Keeper) InitializeLeaderboard(ctx context.Context, admin sdk.AccAddress) (types.Leaderboard, error) {
	if err := types.ValidateIdentity(admin); err != nil {
		return types.Leaderboard{}, err
	}

	addr := types.DeriveLeaderboardAddress()
	exists, err := k.Leaderboards.Has(ctx, addr)
	if err != nil {
		return types.Leaderboard{}, err
	}
	if exists {
		return types.Leaderboard{}, errorsmod.Wrapf(types.ErrAlreadyExists, "leaderboard %s", addr)
	}

	lb := types.NewLeaderboard(admin)
	if err := k.Leaderboards.Set(ctx, addr, lb); err != nil {
		return types.Leaderboard{}, err
	}
	return lb, nil
}

// UpdateLeaderboard folds the current snapshot of owner's record into the
// leaderboard. No staleness or duplicate check is made; see Leaderboard.Merge.
func (k Keeper) UpdateLeaderboard(ctx context.Context, owner sdk.AccAddress) (types.Leaderboard, uint32, error) {
	player, err := k.GetPlayer(ctx, owner)
	if err != nil {
		return types.Leaderboard{}, 0, err
	}
	lb, err := k.GetLeaderboard(ctx)
	if err != nil {
		return types.Leaderboard{}, 0, err
	}

	rank := lb.Merge(types.EntryFromRecord(player))
	if err := k.Leaderboards.Set(ctx, types.DeriveLeaderboardAddress(), lb); err != nil {
		return types.Leaderboard{}, 0, err
	}
	return lb, uint32(rank), nil
}
