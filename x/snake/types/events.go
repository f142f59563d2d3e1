package types

const (
	EventPlayerInitialized      = "snake.player_initialized"
	EventScoreSubmitted         = "snake.score_submitted"
	EventLeaderboardInitialized = "snake.leaderboard_initialized"
	EventLeaderboardUpdated     = "snake.leaderboard_updated"
)

const (
	AttrPlayer        = "player"
	AttrAddress       = "address"
	AttrDisplayName   = "display_name"
	AttrScore         = "score"
	AttrHighScore     = "high_score"
	AttrGamesPlayed   = "games_played"
	AttrNewHighScore  = "new_high_score"
	AttrAdministrator = "administrator"
	AttrRank          = "rank"
	AttrSize          = "size"
)
