package keeper

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"snakegame/x/snake/types"
)

// SubmitScore handles the SubmitScore message.
// Only the owner of the targeted record may submit to it.
func (k msgServer) SubmitScore(ctx context.Context, msg *types.MsgSubmitScore) (*types.MsgSubmitScoreResponse, error) {
	if msg == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidRequest, "empty message")
	}
	signer, err := k.parseIdentity(msg.Signer, "signer")
	if err != nil {
		return nil, err
	}
	owner, err := k.parseIdentity(msg.Owner(), "player")
	if err != nil {
		return nil, err
	}

	var (
		player  types.PlayerRecord
		newHigh bool
	)
	err = atomically(ctx, func(ctx sdk.Context) error {
		player, newHigh, err = k.Keeper.SubmitScore(ctx, signer, owner, msg.Score)
		if err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventScoreSubmitted,
				sdk.NewAttribute(types.AttrPlayer, msg.Owner()),
				sdk.NewAttribute(types.AttrScore, strconv.FormatUint(uint64(msg.Score), 10)),
				sdk.NewAttribute(types.AttrHighScore, strconv.FormatUint(uint64(player.HighScore), 10)),
				sdk.NewAttribute(types.AttrGamesPlayed, strconv.FormatUint(uint64(player.GamesPlayed), 10)),
				sdk.NewAttribute(types.AttrNewHighScore, strconv.FormatBool(newHigh)),
			),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	k.Logger(ctx).Debug("score submitted", "player", msg.Owner(), "score", msg.Score, "high_score", player.HighScore)
	return &types.MsgSubmitScoreResponse{Player: player, NewHighScore: newHigh}, nil
}
