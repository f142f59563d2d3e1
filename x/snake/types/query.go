package types

import "context"

// QueryServer is the read surface of the module.
type QueryServer interface {
	Player(context.Context, *QueryPlayerRequest) (*QueryPlayerResponse, error)
	PlayerAddress(context.Context, *QueryPlayerAddressRequest) (*QueryPlayerAddressResponse, error)
	Leaderboard(context.Context, *QueryLeaderboardRequest) (*QueryLeaderboardResponse, error)
	Rank(context.Context, *QueryRankRequest) (*QueryRankResponse, error)
}

type QueryPlayerRequest struct {
	Owner string `json:"owner"`
}

type QueryPlayerResponse struct {
	Address string       `json:"address"`
	Player  PlayerRecord `json:"player"`
}

type QueryPlayerAddressRequest struct {
	Owner string `json:"owner"`
}

type QueryPlayerAddressResponse struct {
	Address string `json:"address"`
}

type QueryLeaderboardRequest struct{}

type QueryLeaderboardResponse struct {
	Address     string      `json:"address"`
	Leaderboard Leaderboard `json:"leaderboard"`
}

type QueryRankRequest struct {
	Owner string `json:"owner"`
}

type QueryRankResponse struct {
	Ranks []uint32 `json:"ranks"`
}
