package model

type LinkWalletRequest struct {
	Address string `json:"address"`
}

type LinkWalletResponse struct {
	NFTCount int `json:"nft_count"`
}
