package keeper

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"snakegame/x/snake/types"
)

// VerifyOwner is the authorization gate for mutations of an existing record:
// the verified signer must be the record's owner.
func VerifyOwner(signer, owner sdk.AccAddress) error {
	if !signer.Equals(owner) {
		return errorsmod.Wrapf(types.ErrUnauthorized, "signer %s does not own the record of %s", signer, owner)
	}
	return nil
}
