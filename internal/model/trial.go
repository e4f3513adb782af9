package model

type TrialRound struct {
	Round  int    `json:"round"`
	Won    bool   `json:"won"`
	Action string `json:"action"`
}

type PlayTrialRequest struct{}

type PlayTrialResponse struct {
	Rounds    []TrialRound `json:"rounds"`
	Wins      int          `json:"wins"`
	Victory   bool         `json:"victory"`
	Reward    int64        `json:"reward"`
	WinChance float64      `json:"win_chance"`
	NFTCount  int          `json:"nft_count"`
}

type GetTrialStatusRequest struct{}

type GetTrialStatusResponse struct {
	Ready     bool    `json:"ready"`
	Countdown string  `json:"countdown"`
	WinChance float64 `json:"win_chance"`
	NFTCount  int     `json:"nft_count"`
}
