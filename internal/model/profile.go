package model

type GetMyProfileRequest struct{}

type GetMyProfileResponse struct {
	ID             string              `json:"id"`
	WalletAddress  string              `json:"wallet_address,omitempty"`
	Role           string              `json:"role"`
	NFTCount       int                 `json:"nft_count"`
	Collections    []CollectionHolding `json:"collections,omitempty"`
	WinChance      float64             `json:"win_chance"`
	TotalTokens    int64               `json:"total_tokens"`
	WeeklyTokens   int64               `json:"weekly_tokens"`
	TrialCountdown string              `json:"trial_countdown"`
	ClaimCountdown string              `json:"claim_countdown"`
}

type PayoutTx struct {
	TxHash    string `json:"tx_hash"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"created_at"`
}

type GetPayoutHistoryRequest struct{}

type GetPayoutHistoryResponse struct {
	Data []PayoutTx `json:"data"`
}
