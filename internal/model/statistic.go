package model

type GetLeaderboardRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type LeaderboardEntry struct {
	PlayerID     string `json:"player_id"`
	WeeklyTokens int64  `json:"weekly_tokens"`
	Rank         int    `json:"rank"`
}

type GetLeaderboardResponse struct {
	Data []LeaderboardEntry `json:"data"`
}
