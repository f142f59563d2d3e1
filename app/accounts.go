package app

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"snakegame/x/snake/types"
)

// AccountsStoreKey names the store holding per-signer sequences.
const AccountsStoreKey = "acc"

// SequencesKey is the prefix of the signer sequence map.
var SequencesKey = collections.NewPrefix(0)

// accountKeeper tracks the next sequence each signer must sign with. A
// delivered transaction consumes its sequence, so a signed transaction
// applies at most once.
type accountKeeper struct {
	Schema    collections.Schema
	Sequences collections.Map[sdk.AccAddress, uint64]
}

func newAccountKeeper(storeService store.KVStoreService) (accountKeeper, error) {
	sb := collections.NewSchemaBuilder(storeService)
	k := accountKeeper{
		Sequences: collections.NewMap(sb, SequencesKey, "sequences", sdk.AccAddressKey, collections.Uint64Value),
	}
	schema, err := sb.Build()
	if err != nil {
		return accountKeeper{}, err
	}
	k.Schema = schema
	return k, nil
}

// GetSequence returns the sequence the next transaction of addr must carry.
func (k accountKeeper) GetSequence(ctx context.Context, addr sdk.AccAddress) (uint64, error) {
	seq, err := k.Sequences.Get(ctx, addr)
	if errors.Is(err, collections.ErrNotFound) {
		return 0, nil
	}
	return seq, err
}

// consumeSequence checks that seq is the expected sequence of addr and
// advances it.
func (k accountKeeper) consumeSequence(ctx context.Context, addr sdk.AccAddress, seq uint64) error {
	expected, err := k.GetSequence(ctx, addr)
	if err != nil {
		return err
	}
	if seq != expected {
		return errorsmod.Wrapf(types.ErrUnauthorized, "account sequence mismatch, expected %d, got %d", expected, seq)
	}
	return k.Sequences.Set(ctx, addr, expected+1)
}

// SequenceResponse is returned by the account sequence route.
type SequenceResponse struct {
	Address  string `json:"address"`
	Sequence uint64 `json:"sequence,string"`
}
