package entity

// GameSetting is a tunable overriding the static game configuration.
type GameSetting struct {
	Base

	Key   string `gorm:"uniqueIndex"`
	Value string
}

const (
	SettingBaseWinChance = "base_win_chance"
	SettingWeightPerNFT  = "weight_per_nft"
	SettingMaxWinChance  = "max_win_chance"
	SettingCooldownHours = "cooldown_hours"
)
