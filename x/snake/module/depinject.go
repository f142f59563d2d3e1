package module

import (
	"cosmossdk.io/core/address"
	"cosmossdk.io/core/appmodule"
	"cosmossdk.io/core/store"
	"cosmossdk.io/depinject"

	"snakegame/x/snake/keeper"
)

var _ depinject.OnePerModuleType = AppModule{}

type ModuleInputs struct {
	depinject.In

	StoreService store.KVStoreService
	AddressCodec address.Codec
}

type ModuleOutputs struct {
	depinject.Out

	SnakeKeeper keeper.Keeper
	Module      appmodule.AppModule
}

func ProvideModule(in ModuleInputs) ModuleOutputs {
	k := keeper.NewKeeper(in.StoreService, in.AddressCodec)
	m := NewAppModule(k)
	return ModuleOutputs{SnakeKeeper: k, Module: m}
}
