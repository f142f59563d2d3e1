package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"snakegame/x/snake/keeper"
	"snakegame/x/snake/types"
)

func TestQueryPlayer(t *testing.T) {
	f := initFixture(t)
	ms := keeper.NewMsgServerImpl(f.keeper)
	qs := keeper.NewQueryServerImpl(f.keeper)
	owner, alice := f.newPlayer(t)

	_, err := qs.Player(f.ctx, &types.QueryPlayerRequest{Owner: alice})
	require.Equal(t, codes.NotFound, status.Code(err))

	_, err = qs.Player(f.ctx, &types.QueryPlayerRequest{})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = ms.InitializePlayer(f.ctx, types.NewMsgInitializePlayer(alice, "Alice"))
	require.NoError(t, err)

	resp, err := qs.Player(f.ctx, &types.QueryPlayerRequest{Owner: alice})
	require.NoError(t, err)
	require.Equal(t, "Alice", resp.Player.DisplayName)
	require.Equal(t, types.DerivePlayerAddress(owner).String(), resp.Address)

	addr, err := qs.PlayerAddress(f.ctx, &types.QueryPlayerAddressRequest{Owner: alice})
	require.NoError(t, err)
	require.Equal(t, resp.Address, addr.Address)
}

func TestQueryLeaderboardAndRank(t *testing.T) {
	f := initFixture(t)
	ms := keeper.NewMsgServerImpl(f.keeper)
	qs := keeper.NewQueryServerImpl(f.keeper)
	_, alice := f.newPlayer(t)
	_, bob := f.newPlayer(t)

	_, err := qs.Leaderboard(f.ctx, &types.QueryLeaderboardRequest{})
	require.Equal(t, codes.NotFound, status.Code(err))

	_, err = ms.InitializeLeaderboard(f.ctx, types.NewMsgInitializeLeaderboard(alice))
	require.NoError(t, err)
	for name, score := range map[string]uint32{alice: 10, bob: 20} {
		_, err = ms.InitializePlayer(f.ctx, types.NewMsgInitializePlayer(name, "p"))
		require.NoError(t, err)
		_, err = ms.SubmitScore(f.ctx, types.NewMsgSubmitScore(name, "", score))
		require.NoError(t, err)
		_, err = ms.UpdateLeaderboard(f.ctx, types.NewMsgUpdateLeaderboard(name, name))
		require.NoError(t, err)
	}

	lb, err := qs.Leaderboard(f.ctx, &types.QueryLeaderboardRequest{})
	require.NoError(t, err)
	require.Len(t, lb.Leaderboard.Entries, 2)

	rank, err := qs.Rank(f.ctx, &types.QueryRankRequest{Owner: bob})
	require.NoError(t, err)
	require.Equal(t, []uint32{1}, rank.Ranks)

	rank, err = qs.Rank(f.ctx, &types.QueryRankRequest{Owner: alice})
	require.NoError(t, err)
	require.Equal(t, []uint32{2}, rank.Ranks)

	_, stranger := f.newPlayer(t)
	rank, err = qs.Rank(f.ctx, &types.QueryRankRequest{Owner: stranger})
	require.NoError(t, err)
	require.Empty(t, rank.Ranks)
}
