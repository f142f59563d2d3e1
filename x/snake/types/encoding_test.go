package types_test

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"snakegame/x/snake/types"
)

func TestSpaceBudgets(t *testing.T) {
	require.Equal(t, 84, types.PlayerRecordSpace)
	require.Equal(t, 764, types.LeaderboardSpace)
}

func TestPlayerRecordLayout(t *testing.T) {
	p := types.PlayerRecord{Owner: identity(7), DisplayName: "Alice", HighScore: 50, GamesPlayed: 2}
	bz, err := types.MarshalPlayerRecord(p)
	require.NoError(t, err)
	require.Len(t, bz, 8+32+4+5+4+4)

	require.Equal(t, []byte(identity(7)), bz[8:40])
	require.Equal(t, uint32(5), binary.LittleEndian.Uint32(bz[40:44]))
	require.Equal(t, "Alice", string(bz[44:49]))
	require.Equal(t, uint32(50), binary.LittleEndian.Uint32(bz[49:53]))
	require.Equal(t, uint32(2), binary.LittleEndian.Uint32(bz[53:57]))

	got, err := types.UnmarshalPlayerRecord(bz)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestPlayerRecordOverflow(t *testing.T) {
	p := types.PlayerRecord{Owner: identity(7), DisplayName: strings.Repeat("x", types.MaxDisplayNameLen+1)}
	_, err := types.MarshalPlayerRecord(p)
	require.ErrorIs(t, err, types.ErrSerializationOverflow)

	p.DisplayName = strings.Repeat("x", types.MaxDisplayNameLen)
	bz, err := types.MarshalPlayerRecord(p)
	require.NoError(t, err)
	require.Len(t, bz, types.PlayerRecordSpace)
}

func TestLeaderboardLayout(t *testing.T) {
	lb := types.NewLeaderboard(identity(1))
	lb.Merge(entry(2, 9))
	lb.Merge(entry(3, 12))

	bz, err := types.MarshalLeaderboard(lb)
	require.NoError(t, err)
	require.Equal(t, uint32(2), binary.LittleEndian.Uint32(bz[40:44]))

	got, err := types.UnmarshalLeaderboard(bz)
	require.NoError(t, err)
	require.Equal(t, lb, got)
}

func TestLeaderboardOverflow(t *testing.T) {
	lb := types.NewLeaderboard(identity(1))
	for i := 0; i <= types.MaxLeaderboardSize; i++ {
		lb.Entries = append(lb.Entries, entry(byte(i), 1))
	}
	_, err := types.MarshalLeaderboard(lb)
	require.ErrorIs(t, err, types.ErrSerializationOverflow)
}

func TestFullLeaderboardFitsSpace(t *testing.T) {
	lb := types.NewLeaderboard(identity(1))
	for i := 0; i < types.MaxLeaderboardSize; i++ {
		lb.Entries = append(lb.Entries, types.LeaderboardEntry{
			Player:      identity(byte(i)),
			DisplayName: strings.Repeat("n", types.MaxDisplayNameLen),
			Score:       1,
		})
	}
	bz, err := types.MarshalLeaderboard(lb)
	require.NoError(t, err)
	require.Len(t, bz, types.LeaderboardSpace)
}

func TestDecodeRejectsForeignAccount(t *testing.T) {
	bz, err := types.MarshalPlayerRecord(types.NewPlayerRecord(identity(4), "bob"))
	require.NoError(t, err)

	_, err = types.UnmarshalLeaderboard(bz)
	require.ErrorIs(t, err, types.ErrInvalidRequest)
	require.Contains(t, err.Error(), "discriminator")

	_, err = types.UnmarshalPlayerRecord(bz[:len(bz)-1])
	require.ErrorIs(t, err, types.ErrInvalidRequest)

	_, err = types.UnmarshalPlayerRecord(append(bz, 0))
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestMarshalRejectsShortIdentity(t *testing.T) {
	_, err := types.MarshalPlayerRecord(types.PlayerRecord{Owner: identity(1)[:20]})
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}
