package cmd

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"snakegame/app"
	"snakegame/x/snake/types"
)

func TestHTTPClient(t *testing.T) {
	a, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), app.DefaultChainID, prometheus.NewRegistry())
	require.NoError(t, err)
	srv := httptest.NewServer(a.NewRouter(nil))
	defer srv.Close()

	c := newHTTPClient(srv.URL)
	ctx := context.Background()
	priv := ed25519.GenPrivKey()
	owner := app.SignerOf(priv)

	_, err = c.Player(ctx, owner)
	require.ErrorContains(t, err, "404")

	for _, msg := range []types.Msg{
		types.NewMsgInitializePlayer(owner, "Alice"),
		types.NewMsgSubmitScore(owner, "", 64),
		types.NewMsgInitializeLeaderboard(owner),
		types.NewMsgUpdateLeaderboard(owner, owner),
	} {
		seq, err := c.Sequence(ctx, owner)
		require.NoError(t, err)
		tx, err := app.Sign(priv, app.DefaultChainID, seq, msg)
		require.NoError(t, err)
		_, err = c.Broadcast(ctx, tx)
		require.NoError(t, err)

		// the same signed transaction cannot be applied twice
		_, err = c.Broadcast(ctx, tx)
		require.ErrorContains(t, err, "403")
	}

	seq, err := c.Sequence(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, uint64(4), seq)

	tx, err := app.Sign(priv, app.DefaultChainID, seq, types.NewMsgInitializePlayer(owner, "Again"))
	require.NoError(t, err)
	_, err = c.Broadcast(ctx, tx)
	require.ErrorContains(t, err, "409")

	_, err = c.Sequence(ctx, "not-an-address")
	require.ErrorContains(t, err, "400")

	bz, err := c.Player(ctx, owner)
	require.NoError(t, err)
	var player types.QueryPlayerResponse
	require.NoError(t, json.Unmarshal(bz, &player))
	require.Equal(t, uint32(64), player.Player.HighScore)

	bz, err = c.PlayerAddress(ctx, owner)
	require.NoError(t, err)
	var addr types.QueryPlayerAddressResponse
	require.NoError(t, json.Unmarshal(bz, &addr))
	require.Equal(t, player.Address, addr.Address)

	bz, err = c.Rank(ctx, owner)
	require.NoError(t, err)
	require.JSONEq(t, `{"ranks":[1]}`, string(bz))

	bz, err = c.Leaderboard(ctx)
	require.NoError(t, err)
	var lb types.QueryLeaderboardResponse
	require.NoError(t, json.Unmarshal(bz, &lb))
	require.Len(t, lb.Leaderboard.Entries, 1)
}

func TestKeystore(t *testing.T) {
	ks := NewKeystore(t.TempDir(), "secret")

	keys, err := ks.List()
	require.NoError(t, err)
	require.Empty(t, keys)

	kf, err := ks.Add("alice")
	require.NoError(t, err)
	_, err = ks.Add("alice")
	require.Error(t, err)
	_, err = ks.Add("../escape")
	require.Error(t, err)

	priv, err := ks.PrivKey("alice")
	require.NoError(t, err)
	require.Equal(t, kf.Address, app.SignerOf(priv))

	resolved, err := ks.ResolveAddress("alice")
	require.NoError(t, err)
	require.Equal(t, kf.Address, resolved)
	resolved, err = ks.ResolveAddress(kf.Address)
	require.NoError(t, err)
	require.Equal(t, kf.Address, resolved)

	wrong := NewKeystore(ks.dir, "not-the-passphrase")
	_, err = wrong.PrivKey("alice")
	require.Error(t, err)
}
