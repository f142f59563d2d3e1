package module

import (
	"context"
	"encoding/json"

	"cosmossdk.io/core/appmodule"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"

	"snakegame/x/snake/keeper"
	"snakegame/x/snake/types"
)

// AppModuleBasic defines the basic application module used by the snake module.
type AppModuleBasic struct{}

func (AppModuleBasic) Name() string { return types.ModuleName }

func (AppModuleBasic) DefaultGenesis(codec.JSONCodec) json.RawMessage {
	bz, _ := json.Marshal(types.DefaultGenesis())
	return bz
}

func (AppModuleBasic) ValidateGenesis(_ codec.JSONCodec, _ client.TxEncodingConfig, bz json.RawMessage) error {
	if len(bz) == 0 {
		return nil
	}
	gs, err := ParseGenesis(bz)
	if err != nil {
		return err
	}
	return gs.Validate()
}

// ParseGenesis decodes a JSON genesis document. An empty document yields the default genesis.
func ParseGenesis(bz json.RawMessage) (*types.GenesisState, error) {
	gs := types.DefaultGenesis()
	if len(bz) == 0 {
		return gs, nil
	}
	if err := json.Unmarshal(bz, gs); err != nil {
		return nil, err
	}
	return gs, nil
}

// AppModule implements an application module for the snake module.
type AppModule struct {
	AppModuleBasic
	keeper keeper.Keeper
}

var (
	_ appmodule.AppModule     = AppModule{}
	_ module.HasName          = AppModule{}
	_ module.HasGenesisBasics = AppModuleBasic{}
	_ module.HasGenesis       = AppModule{}
)

func NewAppModule(k keeper.Keeper) AppModule {
	return AppModule{keeper: k}
}

// IsAppModule marks compatibility with appmodule wiring helpers.
func (AppModule) IsAppModule() {}

// IsOnePerModuleType implements the depinject.OnePerModuleType interface.
func (AppModule) IsOnePerModuleType() {}

// Keeper returns the keeper backing the module.
func (am AppModule) Keeper() keeper.Keeper { return am.keeper }

func (am AppModule) InitGenesis(ctx sdk.Context, _ codec.JSONCodec, data json.RawMessage) {
	if err := am.InitGenesisJSON(ctx, data); err != nil {
		panic(err)
	}
}

func (am AppModule) ExportGenesis(ctx sdk.Context, _ codec.JSONCodec) json.RawMessage {
	bz, err := am.ExportGenesisJSON(ctx)
	if err != nil {
		panic(err)
	}
	return bz
}

// InitGenesisJSON is InitGenesis with errors returned instead of raised.
func (am AppModule) InitGenesisJSON(ctx context.Context, data json.RawMessage) error {
	gs, err := ParseGenesis(data)
	if err != nil {
		return err
	}
	return am.keeper.InitGenesis(ctx, *gs)
}

// ExportGenesisJSON is ExportGenesis with errors returned instead of raised.
func (am AppModule) ExportGenesisJSON(ctx context.Context) (json.RawMessage, error) {
	gs, err := am.keeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(gs, "", "  ")
}

func (AppModule) ConsensusVersion() uint64 { return 1 }
