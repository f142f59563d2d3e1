package app_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	"github.com/stretchr/testify/require"

	"snakegame/app"
	"snakegame/x/snake/types"
)

func postTx(t *testing.T, srv *httptest.Server, priv *ed25519.PrivKey, msg types.Msg) *http.Response {
	t.Helper()
	var seq app.SequenceResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/snake/accounts/"+msg.GetSigner()+"/sequence", &seq))
	tx, err := app.Sign(priv, testChainID, seq.Sequence, msg)
	require.NoError(t, err)
	bz, err := json.Marshal(tx)
	require.NoError(t, err)
	res, err := http.Post(srv.URL+"/snake/txs", "application/json", bytes.NewReader(bz))
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()
	res, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func TestAPIRoutes(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.NewRouter(a.reg))
	defer srv.Close()

	alice := ed25519.GenPrivKey()
	aliceAddr := app.SignerOf(alice)

	res := postTx(t, srv, alice, types.NewMsgInitializePlayer(aliceAddr, "Alice"))
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, http.StatusOK, postTx(t, srv, alice, types.NewMsgSubmitScore(aliceAddr, "", 300)).StatusCode)
	require.Equal(t, http.StatusOK, postTx(t, srv, alice, types.NewMsgInitializeLeaderboard(aliceAddr)).StatusCode)
	require.Equal(t, http.StatusOK, postTx(t, srv, alice, types.NewMsgUpdateLeaderboard(aliceAddr, aliceAddr)).StatusCode)

	var player types.QueryPlayerResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/snake/players/"+aliceAddr, &player))
	require.Equal(t, "Alice", player.Player.DisplayName)
	require.Equal(t, uint32(300), player.Player.HighScore)

	var addr types.QueryPlayerAddressResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/snake/players/"+aliceAddr+"/address", &addr))
	require.Equal(t, player.Address, addr.Address)

	var lb types.QueryLeaderboardResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/snake/leaderboard", &lb))
	require.Len(t, lb.Leaderboard.Entries, 1)
	require.Equal(t, uint32(300), lb.Leaderboard.Entries[0].Score)

	var rank types.QueryRankResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/snake/players/"+aliceAddr+"/rank", &rank))
	require.Equal(t, []uint32{1}, rank.Ranks)

	var seq app.SequenceResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/snake/accounts/"+aliceAddr+"/sequence", &seq))
	require.Equal(t, aliceAddr, seq.Address)
	require.Equal(t, uint64(4), seq.Sequence)

	var genesis types.GenesisState
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/snake/genesis", &genesis))
	require.Len(t, genesis.Players, 1)

	metrics, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	body, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `snake_txs_total{msg="submit_score",result="ok"} 1`)
}

func TestAPIErrors(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.NewRouter(nil))
	defer srv.Close()

	alice := ed25519.GenPrivKey()
	bob := ed25519.GenPrivKey()
	aliceAddr, bobAddr := app.SignerOf(alice), app.SignerOf(bob)

	var payload struct {
		Code    int32  `json:"code"`
		Message string `json:"message"`
	}
	require.Equal(t, http.StatusNotFound, getJSON(t, srv, "/snake/players/"+aliceAddr, &payload))
	require.NotEmpty(t, payload.Message)
	require.Equal(t, http.StatusNotFound, getJSON(t, srv, "/snake/leaderboard", nil))
	require.Equal(t, http.StatusBadRequest, getJSON(t, srv, "/snake/players/not-an-address", nil))
	require.Equal(t, http.StatusNotFound, getJSON(t, srv, "/metrics", nil))
	require.Equal(t, http.StatusBadRequest, getJSON(t, srv, "/snake/accounts/not-an-address/sequence", nil))

	require.Equal(t, http.StatusOK, postTx(t, srv, alice, types.NewMsgInitializePlayer(aliceAddr, "Alice")).StatusCode)
	require.Equal(t, http.StatusConflict, postTx(t, srv, alice, types.NewMsgInitializePlayer(aliceAddr, "Alice")).StatusCode)
	require.Equal(t, http.StatusForbidden, postTx(t, srv, bob, types.NewMsgSubmitScore(bobAddr, aliceAddr, 1)).StatusCode)

	res, err := http.Post(srv.URL+"/snake/txs", "application/json", bytes.NewReader([]byte(`{not json`)))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}
