package model

type ClaimRequest struct{}

type ClaimResponse struct {
	TxHash     string  `json:"tx_hash"`
	Amount     int64   `json:"amount"`
	BaseAmount int64   `json:"base_amount"`
	Boss       string  `json:"boss,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty"`
}

type ForceClaimRequest struct {
	PlayerID string `json:"player_id"`
}

type ForceClaimResponse struct {
	TxHash string `json:"tx_hash"`
	Amount int64  `json:"amount"`
}
