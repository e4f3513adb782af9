package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/snektrials/backend/config"
	"github.com/snektrials/backend/pkg/xcontext"

	"github.com/joho/godotenv"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Fatalf("invalid integer for %s: %v", key, err)
	}

	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Fatalf("invalid float for %s: %v", key, err)
	}

	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("invalid duration for %s: %v", key, err)
	}

	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Fatalf("invalid boolean for %s: %v", key, err)
	}

	return parsed
}

func (s *srv) loadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "snektrials"),
			User:     getEnv("MYSQL_USER", "snektrials"),
			Password: getEnv("MYSQL_PASSWORD", "secret"),
		},
		ApiServer: config.ServerConfigs{
			Host: getEnv("API_HOST", ""),
			Port: getEnv("API_PORT", "8080"),
		},
		MetricsServer: config.ServerConfigs{
			Host: getEnv("METRICS_HOST", ""),
			Port: getEnv("METRICS_PORT", "9000"),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvDuration("ACCESS_TOKEN_DURATION", 24*time.Hour),
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Discord: config.DiscordConfigs{
			BotToken:   getEnv("DISCORD_BOT_TOKEN", ""),
			BotID:      getEnv("DISCORD_BOT_ID", ""),
			OperatorID: getEnv("DISCORD_OPERATOR_ID", ""),
		},
		Cardano: config.CardanoConfigs{
			Network:          getEnv("CARDANO_NETWORK", "preprod"),
			BlockfrostAPIKey: getEnv("BLOCKFROST_API_KEY", ""),
		},
		Treasury: config.TreasuryConfigs{
			Address:               getEnv("TREASURY_ADDRESS", ""),
			Mnemonic:              getEnv("TREASURY_MNEMONIC", ""),
			TokenName:             getEnv("TREASURY_TOKEN_NAME", "SNEK"),
			TokenUnit:             getEnv("TREASURY_TOKEN_UNIT", ""),
			TokenDecimals:         int(getEnvInt("TREASURY_TOKEN_DECIMALS", 0)),
			MinOutputFloor:        getEnvInt("TREASURY_MIN_OUTPUT_FLOOR", 2_000_000),
			FeeBuffer:             getEnvInt("TREASURY_FEE_BUFFER", 2_000_000),
			ClaimNativeFloor:      getEnvInt("TREASURY_CLAIM_NATIVE_FLOOR", 3_000_000),
			ForceClaimNativeFloor: getEnvInt("TREASURY_FORCE_CLAIM_NATIVE_FLOOR", 3_000_000),
			PayoutRateLimit:       getEnvDuration("TREASURY_PAYOUT_RATE_LIMIT", 5*time.Second),
			ClaimLockWindow:       getEnvDuration("TREASURY_CLAIM_LOCK_WINDOW", 168*time.Hour),
			AlertCooldown:         getEnvDuration("TREASURY_ALERT_COOLDOWN", 30*time.Minute),
			MaxForceClaim:         getEnvInt("TREASURY_MAX_FORCE_CLAIM", 1000),
			TestMode:              getEnvBool("TREASURY_TEST_MODE", false),
		},
		Game: config.GameConfigs{
			BaseWinChance:        getEnvFloat("GAME_BASE_WIN_CHANCE", 0.5),
			WeightPerNFT:         getEnvFloat("GAME_WEIGHT_PER_NFT", 0.01),
			MaxWinChance:         getEnvFloat("GAME_MAX_WIN_CHANCE", 0.75),
			TrialRounds:          int(getEnvInt("GAME_TRIAL_ROUNDS", 3)),
			BaseReward:           getEnvInt("GAME_BASE_REWARD", 50),
			TrialCooldown:        getEnvDuration("GAME_TRIAL_COOLDOWN", 24*time.Hour),
			WalletChangeCooldown: getEnvDuration("GAME_WALLET_CHANGE_COOLDOWN", 24*time.Hour),
			BossFile:             getEnv("GAME_BOSS_FILE", ""),
			ActiveBoss:           getEnv("GAME_ACTIVE_BOSS", ""),
		},
	}

	s.ctx = xcontext.WithConfigs(context.Background(), *s.configs)
}
