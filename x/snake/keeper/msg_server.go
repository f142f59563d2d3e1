package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"snakegame/x/snake/types"
)

type msgServer struct {
	Keeper
}

var _ types.MsgServer = msgServer{}

// NewMsgServerImpl returns an implementation of the MsgServer interface
// for the provided Keeper.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

// atomically runs fn against a branch of the store. The branch, together with
// the events fn emitted, is written back only when fn succeeds.
func atomically(ctx context.Context, fn func(sdk.Context) error) error {
	cacheCtx, write := sdk.UnwrapSDKContext(ctx).CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	write()
	return nil
}
