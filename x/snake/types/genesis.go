package types

import (
	errorsmod "cosmossdk.io/errors"
)

// GenesisState is the exported state of the module.
type GenesisState struct {
	Players     []PlayerRecord `json:"players"`
	Leaderboard *Leaderboard   `json:"leaderboard,omitempty"`
}

func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Players: []PlayerRecord{},
	}
}

// Validate checks every record and the one-record-per-owner invariant.
func (gs GenesisState) Validate() error {
	seen := make(map[string]struct{}, len(gs.Players))
	for i, p := range gs.Players {
		if err := p.Validate(); err != nil {
			return errorsmod.Wrapf(err, "player %d", i)
		}
		key := string(p.Owner)
		if _, ok := seen[key]; ok {
			return errorsmod.Wrapf(ErrAlreadyExists, "duplicate player %s", p.Owner)
		}
		seen[key] = struct{}{}
	}
	if gs.Leaderboard != nil {
		if err := gs.Leaderboard.Validate(); err != nil {
			return errorsmod.Wrap(err, "leaderboard")
		}
	}
	return nil
}
