package keeper

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"snakegame/x/snake/types"
)

// UpdateLeaderboard handles the MsgUpdateLeaderboard message. The signer is
// not checked against the player: any caller may trigger a merge.
func (k msgServer) UpdateLeaderboard(ctx context.Context, msg *types.MsgUpdateLeaderboard) (*types.MsgUpdateLeaderboardResponse, error) {
	if msg == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidRequest, "empty message")
	}
	if _, err := k.parseIdentity(msg.Signer, "signer"); err != nil {
		return nil, err
	}
	owner, err := k.parseIdentity(msg.Player, "player")
	if err != nil {
		return nil, err
	}

	var (
		lb   types.Leaderboard
		rank uint32
	)
	err = atomically(ctx, func(ctx sdk.Context) error {
		lb, rank, err = k.Keeper.UpdateLeaderboard(ctx, owner)
		if err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventLeaderboardUpdated,
				sdk.NewAttribute(types.AttrPlayer, msg.Player),
				sdk.NewAttribute(types.AttrRank, strconv.FormatUint(uint64(rank), 10)),
				sdk.NewAttribute(types.AttrSize, strconv.Itoa(len(lb.Entries))),
			),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	k.Logger(ctx).Debug("leaderboard updated", "player", msg.Player, "rank", rank, "size", len(lb.Entries))
	return &types.MsgUpdateLeaderboardResponse{Leaderboard: lb, Rank: rank}, nil
}
