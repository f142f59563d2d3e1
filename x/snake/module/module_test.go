package module_test

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/core/appmodule"
	"cosmossdk.io/depinject"
	storetypes "cosmossdk.io/store/types"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"snakegame/x/snake/keeper"
	snakemodule "snakegame/x/snake/module"
	"snakegame/x/snake/types"
)

func TestProvideModule(t *testing.T) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := testutil.DefaultContextWithDB(t, storeKey, storetypes.NewTransientStoreKey("transient_test")).Ctx

	var (
		k       keeper.Keeper
		modules map[string]appmodule.AppModule
	)
	err := depinject.Inject(
		depinject.Configs(
			depinject.Supply(
				runtime.NewKVStoreService(storeKey),
				addresscodec.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
			),
			depinject.ProvideInModule(types.ModuleName, snakemodule.ProvideModule),
		),
		&k,
		&modules,
	)
	require.NoError(t, err)
	require.Contains(t, modules, types.ModuleName)

	am, ok := modules[types.ModuleName].(snakemodule.AppModule)
	require.True(t, ok)

	owner := sdk.AccAddress(ed25519.GenPrivKey().PubKey().Bytes())
	_, err = k.InitializePlayer(ctx, owner, "Alice")
	require.NoError(t, err)

	// the module and the injected keeper share the same store
	got, err := am.Keeper().GetPlayer(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, "Alice", got.DisplayName)
}

func TestGenesisRoundTrip(t *testing.T) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := testutil.DefaultContextWithDB(t, storeKey, storetypes.NewTransientStoreKey("transient_test")).Ctx
	k := keeper.NewKeeper(runtime.NewKVStoreService(storeKey), addresscodec.NewBech32Codec("cosmos"))
	am := snakemodule.NewAppModule(k)

	owner := sdk.AccAddress(ed25519.GenPrivKey().PubKey().Bytes())
	lb := types.NewLeaderboard(owner)
	lb.Merge(types.LeaderboardEntry{Player: owner, DisplayName: "Alice", Score: 42})
	gs := types.GenesisState{
		Players: []types.PlayerRecord{{
			Owner:       owner,
			DisplayName: "Alice",
			HighScore:   42,
			GamesPlayed: 3,
		}},
		Leaderboard: &lb,
	}
	bz, err := json.Marshal(gs)
	require.NoError(t, err)
	require.NoError(t, am.ValidateGenesis(nil, nil, bz))

	am.InitGenesis(ctx, nil, bz)

	var exported types.GenesisState
	require.NoError(t, json.Unmarshal(am.ExportGenesis(ctx, nil), &exported))
	require.Equal(t, gs.Players, exported.Players)
	require.NotNil(t, exported.Leaderboard)
	require.Equal(t, lb.Entries, exported.Leaderboard.Entries)
}

func TestValidateGenesis(t *testing.T) {
	am := snakemodule.AppModuleBasic{}

	require.NoError(t, am.ValidateGenesis(nil, nil, nil))
	require.NoError(t, am.ValidateGenesis(nil, nil, am.DefaultGenesis(nil)))
	require.Error(t, am.ValidateGenesis(nil, nil, json.RawMessage(`{"players":`)))

	owner := sdk.AccAddress(ed25519.GenPrivKey().PubKey().Bytes())
	dup := types.GenesisState{Players: []types.PlayerRecord{
		{Owner: owner, DisplayName: "a"},
		{Owner: owner, DisplayName: "b"},
	}}
	bz, err := json.Marshal(dup)
	require.NoError(t, err)
	require.ErrorIs(t, am.ValidateGenesis(nil, nil, bz), types.ErrAlreadyExists)
}
