package app_test

import (
	"encoding/json"
	"testing"

	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	"github.com/stretchr/testify/require"

	"snakegame/app"
	"snakegame/x/snake/types"
)

func TestTxJSON(t *testing.T) {
	priv := ed25519.GenPrivKey()
	signer := app.SignerOf(priv)

	tx, err := app.Sign(priv, testChainID, 7, types.NewMsgSubmitScore(signer, "", 42))
	require.NoError(t, err)

	bz, err := json.Marshal(tx)
	require.NoError(t, err)
	require.Contains(t, string(bz), `"type":"submit_score"`)
	require.Contains(t, string(bz), `"sequence":"7"`)

	var decoded app.Tx
	require.NoError(t, json.Unmarshal(bz, &decoded))
	require.Equal(t, tx.Msg, decoded.Msg)
	require.Equal(t, uint64(7), decoded.Sequence)
	require.NoError(t, decoded.VerifySignature(testChainID))
}

func TestTxJSONRejectsUnknownType(t *testing.T) {
	var tx app.Tx
	err := json.Unmarshal([]byte(`{"type":"transfer","msg":{}}`), &tx)
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestSignBytesAreDeterministic(t *testing.T) {
	priv := ed25519.GenPrivKey()
	msg := types.NewMsgInitializePlayer(app.SignerOf(priv), "Alice")

	a, err := app.SignBytes(testChainID, 0, msg)
	require.NoError(t, err)
	b, err := app.SignBytes(testChainID, 0, msg)
	require.NoError(t, err)
	require.Equal(t, a, b)

	other, err := app.SignBytes("other-chain", 0, msg)
	require.NoError(t, err)
	require.NotEqual(t, a, other)

	next, err := app.SignBytes(testChainID, 1, msg)
	require.NoError(t, err)
	require.NotEqual(t, a, next)
}

func TestVerifySignatureRejectsShortKey(t *testing.T) {
	priv := ed25519.GenPrivKey()
	tx, err := app.Sign(priv, testChainID, 0, types.NewMsgInitializeLeaderboard(app.SignerOf(priv)))
	require.NoError(t, err)

	tx.PubKey = tx.PubKey[:20]
	require.ErrorIs(t, tx.VerifySignature(testChainID), types.ErrUnauthorized)
}

func TestVerifySignatureCoversSequence(t *testing.T) {
	priv := ed25519.GenPrivKey()
	tx, err := app.Sign(priv, testChainID, 2, types.NewMsgInitializeLeaderboard(app.SignerOf(priv)))
	require.NoError(t, err)
	require.NoError(t, tx.VerifySignature(testChainID))

	tx.Sequence = 3
	require.ErrorIs(t, tx.VerifySignature(testChainID), types.ErrUnauthorized)
}
