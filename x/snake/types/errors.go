package types

import (
	errorsmod "cosmossdk.io/errors"
)

var (
	ErrAlreadyExists         = errorsmod.Register(ModuleName, 2, "account already exists")
	ErrNotFound              = errorsmod.Register(ModuleName, 3, "account not found")
	ErrUnauthorized          = errorsmod.Register(ModuleName, 4, "unauthorized")
	ErrCapacityExceeded      = errorsmod.Register(ModuleName, 5, "display name exceeds capacity")
	ErrSerializationOverflow = errorsmod.Register(ModuleName, 6, "serialized account exceeds allocated space")
	ErrInvalidRequest        = errorsmod.Register(ModuleName, 7, "invalid request")
)
