package keeper

import (
	"context"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"snakegame/x/snake/types"
)

type queryServer struct {
	k Keeper
}

var _ types.QueryServer = queryServer{}

// NewQueryServerImpl returns an implementation of the QueryServer interface
// for the provided Keeper.
func NewQueryServerImpl(k Keeper) types.QueryServer {
	return queryServer{k: k}
}

func (q queryServer) Player(ctx context.Context, req *types.QueryPlayerRequest) (*types.QueryPlayerResponse, error) {
	if req == nil || strings.TrimSpace(req.Owner) == "" {
		return nil, status.Error(codes.InvalidArgument, "owner required")
	}
	owner, err := q.k.parseIdentity(req.Owner, "owner")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	player, err := q.k.GetPlayer(ctx, owner)
	if err != nil {
		return nil, toStatus(err)
	}
	return &types.QueryPlayerResponse{
		Address: types.DerivePlayerAddress(owner).String(),
		Player:  player,
	}, nil
}

func (q queryServer) PlayerAddress(_ context.Context, req *types.QueryPlayerAddressRequest) (*types.QueryPlayerAddressResponse, error) {
	if req == nil || strings.TrimSpace(req.Owner) == "" {
		return nil, status.Error(codes.InvalidArgument, "owner required")
	}
	owner, err := q.k.parseIdentity(req.Owner, "owner")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &types.QueryPlayerAddressResponse{Address: types.DerivePlayerAddress(owner).String()}, nil
}

func (q queryServer) Leaderboard(ctx context.Context, req *types.QueryLeaderboardRequest) (*types.QueryLeaderboardResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	lb, err := q.k.GetLeaderboard(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &types.QueryLeaderboardResponse{
		Address:     types.DeriveLeaderboardAddress().String(),
		Leaderboard: lb,
	}, nil
}

func (q queryServer) Rank(ctx context.Context, req *types.QueryRankRequest) (*types.QueryRankResponse, error) {
	if req == nil || strings.TrimSpace(req.Owner) == "" {
		return nil, status.Error(codes.InvalidArgument, "owner required")
	}
	owner, err := q.k.parseIdentity(req.Owner, "owner")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	lb, err := q.k.GetLeaderboard(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	ranks := lb.RanksOf(owner)
	if ranks == nil {
		ranks = []uint32{}
	}
	return &types.QueryRankResponse{Ranks: ranks}, nil
}

func toStatus(err error) error {
	switch {
	case errorsmod.IsOf(err, types.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errorsmod.IsOf(err, types.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
