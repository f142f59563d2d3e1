package app

import (
	"bytes"
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"snakegame/x/snake/types"
)

// msgRegistry maps a message type name to a constructor for its zero value.
var msgRegistry = map[string]func() types.Msg{
	(&types.MsgInitializePlayer{}).Type():      func() types.Msg { return &types.MsgInitializePlayer{} },
	(&types.MsgSubmitScore{}).Type():           func() types.Msg { return &types.MsgSubmitScore{} },
	(&types.MsgInitializeLeaderboard{}).Type(): func() types.Msg { return &types.MsgInitializeLeaderboard{} },
	(&types.MsgUpdateLeaderboard{}).Type():     func() types.Msg { return &types.MsgUpdateLeaderboard{} },
}

// Tx is a single signed message. PubKey is the raw ed25519 key of the signer,
// which is also the signer's identity. Sequence must equal the signer's
// account sequence when the transaction is delivered.
type Tx struct {
	Msg       types.Msg
	Sequence  uint64
	PubKey    []byte
	Signature []byte
}

type txJSON struct {
	Type      string          `json:"type"`
	Msg       json.RawMessage `json:"msg"`
	Sequence  uint64          `json:"sequence,string"`
	PubKey    []byte          `json:"pub_key"`
	Signature []byte          `json:"signature"`
}

func (tx Tx) MarshalJSON() ([]byte, error) {
	if tx.Msg == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidRequest, "empty message")
	}
	msg, err := json.Marshal(tx.Msg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(txJSON{
		Type:      tx.Msg.Type(),
		Msg:       msg,
		Sequence:  tx.Sequence,
		PubKey:    tx.PubKey,
		Signature: tx.Signature,
	})
}

func (tx *Tx) UnmarshalJSON(bz []byte) error {
	var raw txJSON
	if err := json.Unmarshal(bz, &raw); err != nil {
		return errorsmod.Wrap(types.ErrInvalidRequest, err.Error())
	}
	newMsg, ok := msgRegistry[raw.Type]
	if !ok {
		return errorsmod.Wrapf(types.ErrInvalidRequest, "unknown message type %q", raw.Type)
	}
	msg := newMsg()
	if err := json.Unmarshal(raw.Msg, msg); err != nil {
		return errorsmod.Wrapf(types.ErrInvalidRequest, "decode %s: %s", raw.Type, err)
	}
	*tx = Tx{Msg: msg, Sequence: raw.Sequence, PubKey: raw.PubKey, Signature: raw.Signature}
	return nil
}

// SignBytes returns the canonical bytes a signer commits to as sorted JSON:
// the chain id, the account sequence, the message type and the message.
func SignBytes(chainID string, sequence uint64, msg types.Msg) ([]byte, error) {
	bz, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	doc, err := json.Marshal(struct {
		ChainID  string          `json:"chain_id"`
		Sequence uint64          `json:"sequence,string"`
		Type     string          `json:"type"`
		Msg      json.RawMessage `json:"msg"`
	}{chainID, sequence, msg.Type(), bz})
	if err != nil {
		return nil, err
	}
	return sdk.SortJSON(doc)
}

// Sign builds a Tx carrying msg signed by priv at the given account sequence.
func Sign(priv *ed25519.PrivKey, chainID string, sequence uint64, msg types.Msg) (Tx, error) {
	bz, err := SignBytes(chainID, sequence, msg)
	if err != nil {
		return Tx{}, err
	}
	sig, err := priv.Sign(bz)
	if err != nil {
		return Tx{}, err
	}
	return Tx{
		Msg:       msg,
		Sequence:  sequence,
		PubKey:    priv.PubKey().Bytes(),
		Signature: sig,
	}, nil
}

// VerifySignature checks that the attached key is the message signer's
// identity and that it signed the message and sequence for chainID. It does
// not check the sequence against state.
func (tx Tx) VerifySignature(chainID string) error {
	if tx.Msg == nil {
		return errorsmod.Wrap(types.ErrInvalidRequest, "empty message")
	}
	if len(tx.PubKey) != ed25519.PubKeySize {
		return errorsmod.Wrapf(types.ErrUnauthorized, "public key must be %d bytes, got %d", ed25519.PubKeySize, len(tx.PubKey))
	}
	signer, err := sdk.AccAddressFromBech32(tx.Msg.GetSigner())
	if err != nil {
		return errorsmod.Wrapf(types.ErrInvalidRequest, "invalid signer address: %s", err)
	}
	if !bytes.Equal(signer, tx.PubKey) {
		return errorsmod.Wrap(types.ErrUnauthorized, "public key does not match signer")
	}
	bz, err := SignBytes(chainID, tx.Sequence, tx.Msg)
	if err != nil {
		return err
	}
	pub := &ed25519.PubKey{Key: tx.PubKey}
	if !pub.VerifySignature(bz, tx.Signature) {
		return errorsmod.Wrap(types.ErrUnauthorized, "signature verification failed")
	}
	return nil
}

// SignerOf returns the bech32 identity controlled by priv.
func SignerOf(priv *ed25519.PrivKey) string {
	return sdk.AccAddress(priv.PubKey().Bytes()).String()
}

func (tx Tx) String() string {
	if tx.Msg == nil {
		return "tx{}"
	}
	return fmt.Sprintf("tx{%s from %s seq %d}", tx.Msg.Type(), tx.Msg.GetSigner(), tx.Sequence)
}
