package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	"snakegame/x/snake/types"
)

// InitGenesis stores every record at its derived address.
func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}
	for _, p := range gs.Players {
		if err := k.Players.Set(ctx, types.DerivePlayerAddress(p.Owner), p); err != nil {
			return err
		}
	}
	if gs.Leaderboard != nil {
		if err := k.Leaderboards.Set(ctx, types.DeriveLeaderboardAddress(), *gs.Leaderboard); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis walks the store and returns the module state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	gen := types.DefaultGenesis()

	err := k.IterPlayers(ctx, func(p types.PlayerRecord) (bool, error) {
		gen.Players = append(gen.Players, p)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	lb, err := k.GetLeaderboard(ctx)
	switch {
	case err == nil:
		gen.Leaderboard = &lb
	case !errorsmod.IsOf(err, types.ErrNotFound):
		return nil, err
	}
	return gen, nil
}
