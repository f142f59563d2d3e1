package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"snakegame/x/snake/types"
)

// InitializeLeaderboard handles the MsgInitializeLeaderboard message.
func (k msgServer) InitializeLeaderboard(ctx context.Context, msg *types.MsgInitializeLeaderboard) (*types.MsgInitializeLeaderboardResponse, error) {
	if msg == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidRequest, "empty message")
	}
	admin, err := k.parseIdentity(msg.Signer, "signer")
	if err != nil {
		return nil, err
	}

	var lb types.Leaderboard
	err = atomically(ctx, func(ctx sdk.Context) error {
		lb, err = k.Keeper.InitializeLeaderboard(ctx, admin)
		if err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventLeaderboardInitialized,
				sdk.NewAttribute(types.AttrAdministrator, msg.Signer),
				sdk.NewAttribute(types.AttrAddress, types.DeriveLeaderboardAddress().String()),
			),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	k.Logger(ctx).Info("leaderboard initialized", "administrator", msg.Signer)
	return &types.MsgInitializeLeaderboardResponse{
		Address:     types.DeriveLeaderboardAddress().String(),
		Leaderboard: lb,
	}, nil
}
