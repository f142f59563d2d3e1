package keeper

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"snakegame/x/snake/types"
)

// Keeper owns the player records and the global leaderboard. Both live at
// addresses produced by the record deriver.
type Keeper struct {
	storeService corestore.KVStoreService
	addressCodec address.Codec

	Schema       collections.Schema
	Players      collections.Map[sdk.AccAddress, types.PlayerRecord]
	Leaderboards collections.Map[sdk.AccAddress, types.Leaderboard]
}

// NewKeeper creates a new snake module Keeper instance
func NewKeeper(storeService corestore.KVStoreService, addressCodec address.Codec) Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		storeService: storeService,
		addressCodec: addressCodec,

		Players:      collections.NewMap(sb, types.PlayersKeyPrefix, "players", sdk.AccAddressKey, types.PlayerRecordValue{}),
		Leaderboards: collections.NewMap(sb, types.LeaderboardsKeyPrefix, "leaderboards", sdk.AccAddressKey, types.LeaderboardValue{}),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// AddressCodec returns the codec used for bech32 identities.
func (k Keeper) AddressCodec() address.Codec {
	return k.addressCodec
}

// GetPlayer returns the record owned by owner.
func (k Keeper) GetPlayer(ctx context.Context, owner sdk.AccAddress) (types.PlayerRecord, error) {
	player, err := k.Players.Get(ctx, types.DerivePlayerAddress(owner))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.PlayerRecord{}, errorsmod.Wrapf(types.ErrNotFound, "no player record for %s", owner)
		}
		return types.PlayerRecord{}, err
	}
	return player, nil
}

// GetLeaderboard returns the global leaderboard.
func (k Keeper) GetLeaderboard(ctx context.Context) (types.Leaderboard, error) {
	lb, err := k.Leaderboards.Get(ctx, types.DeriveLeaderboardAddress())
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Leaderboard{}, errorsmod.Wrap(types.ErrNotFound, "leaderboard not initialized")
		}
		return types.Leaderboard{}, err
	}
	return lb, nil
}

// IterPlayers walks every stored player record.
func (k Keeper) IterPlayers(ctx context.Context, fn func(types.PlayerRecord) (stop bool, err error)) error {
	return k.Players.Walk(ctx, nil, func(_ sdk.AccAddress, p types.PlayerRecord) (bool, error) {
		return fn(p)
	})
}

func (k Keeper) parseIdentity(addr, field string) (sdk.AccAddress, error) {
	bz, err := k.addressCodec.StringToBytes(addr)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidRequest, "invalid %s address: %s", field, err)
	}
	id := sdk.AccAddress(bz)
	if err := types.ValidateIdentity(id); err != nil {
		return nil, errorsmod.Wrap(err, field)
	}
	return id, nil
}
