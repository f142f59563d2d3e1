package cmd_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"snakegame/app"
	"snakegame/cmd/snaked/cmd"
	"snakegame/x/snake/types"
)

func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	root := cmd.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--home", home))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, home string, args ...string) string {
	t.Helper()
	out, err := run(t, home, args...)
	require.NoError(t, err, "snaked %v", args)
	return out
}

func TestCLIGameFlow(t *testing.T) {
	home := t.TempDir()

	var alice, bob struct {
		Address string `json:"address"`
	}
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, home, "keys", "add", "alice")), &alice))
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, home, "keys", "add", "bob")), &bob))
	_, err := run(t, home, "keys", "add", "alice")
	require.Error(t, err)

	mustRun(t, home, "tx", "init-player", "Alice", "--from", "alice")
	mustRun(t, home, "tx", "init-player", "Bob", "--from", "bob")
	mustRun(t, home, "tx", "init-leaderboard", "--from", "alice")
	mustRun(t, home, "tx", "play", "120", "--from", "alice")
	mustRun(t, home, "tx", "play", "90", "--from", "bob")

	_, err = run(t, home, "tx", "submit-score", "5000", "--from", "bob", "--player", "alice")
	require.ErrorContains(t, err, "unauthorized")

	var player types.QueryPlayerResponse
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, home, "query", "player", "alice")), &player))
	require.Equal(t, uint32(120), player.Player.HighScore)
	require.Equal(t, uint32(1), player.Player.GamesPlayed)
	require.Equal(t, alice.Address, player.Player.Owner.String())

	var seq app.SequenceResponse
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, home, "q", "sequence", "alice")), &seq))
	require.Equal(t, uint64(4), seq.Sequence)
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, home, "q", "sequence", "bob")), &seq))
	require.Equal(t, uint64(3), seq.Sequence)

	var rank types.QueryRankResponse
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, home, "q", "rank", bob.Address)), &rank))
	require.Equal(t, []uint32{2}, rank.Ranks)

	var lb types.QueryLeaderboardResponse
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, home, "query", "leaderboard")), &lb))
	require.Len(t, lb.Leaderboard.Entries, 2)
	require.Equal(t, "Alice", lb.Leaderboard.Entries[0].DisplayName)

	// export into a file and load it into a fresh home
	exported := filepath.Join(t.TempDir(), "genesis.json")
	mustRun(t, home, "genesis", "export", "--output-document", exported)
	mustRun(t, home, "genesis", "validate", exported)

	fresh := t.TempDir()
	mustRun(t, fresh, "genesis", "import", exported)
	_, err = run(t, fresh, "genesis", "import", exported)
	require.Error(t, err)

	var imported types.QueryLeaderboardResponse
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, fresh, "query", "leaderboard")), &imported))
	require.Equal(t, lb.Leaderboard.Entries, imported.Leaderboard.Entries)
}

func TestCLIRejectsBadInput(t *testing.T) {
	home := t.TempDir()
	mustRun(t, home, "keys", "add", "alice")

	_, err := run(t, home, "tx", "submit-score", "many", "--from", "alice")
	require.ErrorContains(t, err, "invalid score")

	_, err = run(t, home, "tx", "init-player", "Alice", "--from", "nobody")
	require.ErrorContains(t, err, "not found")

	_, err = run(t, home, "query", "player", "nobody")
	require.ErrorContains(t, err, "neither an address nor a known key")

	_, err = run(t, home, "--log-level", "loud", "keys", "list")
	require.ErrorContains(t, err, "log_level")
}
