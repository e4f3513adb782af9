package model

type GetBossRequest struct{}

type GetBossResponse struct {
	Active     bool    `json:"active"`
	Name       string  `json:"name,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty"`
	Lore       string  `json:"lore,omitempty"`
	ImageURL   string  `json:"image_url,omitempty"`
}
