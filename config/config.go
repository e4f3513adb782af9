package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database      DatabaseConfigs
	ApiServer     ServerConfigs
	MetricsServer ServerConfigs
	Auth          AuthConfigs
	Redis         RedisConfigs
	Discord       DiscordConfigs
	Cardano       CardanoConfigs
	Treasury      TreasuryConfigs
	Game          GameConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type DiscordConfigs struct {
	BotToken string
	BotID    string

	// OperatorID receives low-treasury direct messages.
	OperatorID string
}

type CardanoConfigs struct {
	// Network is either mainnet or preprod.
	Network          string
	BlockfrostAPIKey string
}

func (c *CardanoConfigs) IsMainnet() bool {
	return c.Network == "mainnet"
}

type TreasuryConfigs struct {
	Address  string
	Mnemonic string

	TokenName     string
	TokenUnit     string
	TokenDecimals int

	// MinOutputFloor is the lovelace every token output must carry to
	// satisfy the min-UTxO rule. FeeBuffer covers fees and change.
	MinOutputFloor int64
	FeeBuffer      int64

	// ClaimNativeFloor and ForceClaimNativeFloor are the context floors
	// added on top of MinOutputFloor+FeeBuffer when checking treasury
	// sufficiency for each entry point.
	ClaimNativeFloor      int64
	ForceClaimNativeFloor int64

	PayoutRateLimit time.Duration
	ClaimLockWindow time.Duration
	AlertCooldown   time.Duration

	// MaxForceClaim caps the administrative forced-claim amount.
	// ForceClaim is refused entirely unless TestMode is set.
	MaxForceClaim int64
	TestMode      bool
}

type GameConfigs struct {
	BaseWinChance float64
	WeightPerNFT  float64
	MaxWinChance  float64

	TrialRounds int
	BaseReward  int64

	TrialCooldown        time.Duration
	WalletChangeCooldown time.Duration

	// BossFile points to the TOML table of event bosses. ActiveBoss
	// selects the boss whose multiplier applies to player claims; empty
	// means no event is running.
	BossFile   string
	ActiveBoss string
}
