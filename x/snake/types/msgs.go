package types

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Msg is implemented by every snake transaction message.
type Msg interface {
	// GetSigner returns the bech32 address that must have signed the message.
	GetSigner() string
	// Type returns a stable message name used in sign bytes and metrics.
	Type() string
	ValidateBasic() error
}

// MsgServer is the transaction surface of the module.
type MsgServer interface {
	InitializePlayer(context.Context, *MsgInitializePlayer) (*MsgInitializePlayerResponse, error)
	SubmitScore(context.Context, *MsgSubmitScore) (*MsgSubmitScoreResponse, error)
	InitializeLeaderboard(context.Context, *MsgInitializeLeaderboard) (*MsgInitializeLeaderboardResponse, error)
	UpdateLeaderboard(context.Context, *MsgUpdateLeaderboard) (*MsgUpdateLeaderboardResponse, error)
}

var (
	_ Msg = (*MsgInitializePlayer)(nil)
	_ Msg = (*MsgSubmitScore)(nil)
	_ Msg = (*MsgInitializeLeaderboard)(nil)
	_ Msg = (*MsgUpdateLeaderboard)(nil)
)

// MsgInitializePlayer creates the signer's player record.
type MsgInitializePlayer struct {
	Signer      string `json:"signer"`
	DisplayName string `json:"display_name"`
}

type MsgInitializePlayerResponse struct {
	Address string       `json:"address"`
	Player  PlayerRecord `json:"player"`
}

// MsgSubmitScore records a finished game on the record owned by Player.
// Player defaults to the signer.
type MsgSubmitScore struct {
	Signer string `json:"signer"`
	Player string `json:"player,omitempty"`
	Score  uint32 `json:"score"`
}

type MsgSubmitScoreResponse struct {
	Player       PlayerRecord `json:"player"`
	NewHighScore bool         `json:"new_high_score"`
}

// MsgInitializeLeaderboard creates the global leaderboard.
type MsgInitializeLeaderboard struct {
	Signer string `json:"signer"`
}

type MsgInitializeLeaderboardResponse struct {
	Address     string      `json:"address"`
	Leaderboard Leaderboard `json:"leaderboard"`
}

// MsgUpdateLeaderboard merges the record owned by Player into the leaderboard.
// Any signer may submit it.
type MsgUpdateLeaderboard struct {
	Signer string `json:"signer"`
	Player string `json:"player"`
}

type MsgUpdateLeaderboardResponse struct {
	Leaderboard Leaderboard `json:"leaderboard"`
	// Rank is the 1-based position of the merged entry, 0 when it did not make the cut.
	Rank uint32 `json:"rank"`
}

func NewMsgInitializePlayer(signer, displayName string) *MsgInitializePlayer {
	return &MsgInitializePlayer{Signer: signer, DisplayName: displayName}
}

func (msg *MsgInitializePlayer) GetSigner() string { return msg.Signer }
func (*MsgInitializePlayer) Type() string          { return "initialize_player" }

func (msg *MsgInitializePlayer) ValidateBasic() error {
	if err := validateAddress(msg.Signer, "signer"); err != nil {
		return err
	}
	return ValidateDisplayName(msg.DisplayName)
}

func NewMsgSubmitScore(signer, player string, score uint32) *MsgSubmitScore {
	return &MsgSubmitScore{Signer: signer, Player: player, Score: score}
}

func (msg *MsgSubmitScore) GetSigner() string { return msg.Signer }
func (*MsgSubmitScore) Type() string          { return "submit_score" }

// Owner returns the owner of the targeted record.
func (msg *MsgSubmitScore) Owner() string {
	if msg.Player == "" {
		return msg.Signer
	}
	return msg.Player
}

func (msg *MsgSubmitScore) ValidateBasic() error {
	if err := validateAddress(msg.Signer, "signer"); err != nil {
		return err
	}
	if msg.Player != "" {
		return validateAddress(msg.Player, "player")
	}
	return nil
}

func NewMsgInitializeLeaderboard(signer string) *MsgInitializeLeaderboard {
	return &MsgInitializeLeaderboard{Signer: signer}
}

func (msg *MsgInitializeLeaderboard) GetSigner() string { return msg.Signer }
func (*MsgInitializeLeaderboard) Type() string          { return "initialize_leaderboard" }

func (msg *MsgInitializeLeaderboard) ValidateBasic() error {
	return validateAddress(msg.Signer, "signer")
}

func NewMsgUpdateLeaderboard(signer, player string) *MsgUpdateLeaderboard {
	return &MsgUpdateLeaderboard{Signer: signer, Player: player}
}

func (msg *MsgUpdateLeaderboard) GetSigner() string { return msg.Signer }
func (*MsgUpdateLeaderboard) Type() string          { return "update_leaderboard" }

func (msg *MsgUpdateLeaderboard) ValidateBasic() error {
	if err := validateAddress(msg.Signer, "signer"); err != nil {
		return err
	}
	return validateAddress(msg.Player, "player")
}

func validateAddress(addr, field string) error {
	bz, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		return errorsmod.Wrapf(ErrInvalidRequest, "invalid %s address: %s", field, err)
	}
	return errorsmod.Wrap(ValidateIdentity(bz), field)
}
