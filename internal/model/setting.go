package model

type GameSetting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SetGameSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SetGameSettingResponse struct{}

type GetGameSettingsRequest struct{}

type GetGameSettingsResponse struct {
	Data []GameSetting `json:"data"`
}

type ResetPlayerRequest struct {
	PlayerID string `json:"player_id"`
}

type ResetPlayerResponse struct{}
