package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"snakegame/x/snake/types"
)

// InitializePlayer handles the MsgInitializePlayer message.
func (k msgServer) InitializePlayer(ctx context.Context, msg *types.MsgInitializePlayer) (*types.MsgInitializePlayerResponse, error) {
	if msg == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidRequest, "empty message")
	}
	owner, err := k.parseIdentity(msg.Signer, "signer")
	if err != nil {
		return nil, err
	}

	var player types.PlayerRecord
	err = atomically(ctx, func(ctx sdk.Context) error {
		player, err = k.Keeper.InitializePlayer(ctx, owner, msg.DisplayName)
		if err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventPlayerInitialized,
				sdk.NewAttribute(types.AttrPlayer, msg.Signer),
				sdk.NewAttribute(types.AttrAddress, types.DerivePlayerAddress(owner).String()),
				sdk.NewAttribute(types.AttrDisplayName, msg.DisplayName),
			),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	k.Logger(ctx).Info("player initialized", "player", msg.Signer, "name", msg.DisplayName)
	return &types.MsgInitializePlayerResponse{
		Address: types.DerivePlayerAddress(owner).String(),
		Player:  player,
	}, nil
}
