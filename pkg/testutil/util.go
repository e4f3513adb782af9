package testutil

import (
	"context"
	"time"

	"github.com/snektrials/backend/config"
	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/pkg/logger"
	"github.com/snektrials/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Discord: config.DiscordConfigs{
			OperatorID: "operator",
		},
		Treasury: config.TreasuryConfigs{
			Address:               "addr1treasury",
			TokenName:             "SNEK",
			TokenUnit:             "279c909f348e533da5808898f87f9a14bb2c3dfbbacccd631d927a3f534e454b",
			TokenDecimals:         0,
			MinOutputFloor:        2_000_000,
			FeeBuffer:             2_000_000,
			ClaimNativeFloor:      3_000_000,
			ForceClaimNativeFloor: 3_000_000,
			PayoutRateLimit:       5 * time.Second,
			ClaimLockWindow:       7 * 24 * time.Hour,
			AlertCooldown:         30 * time.Minute,
			MaxForceClaim:         1000,
			TestMode:              true,
		},
		Game: config.GameConfigs{
			BaseWinChance:        0.5,
			WeightPerNFT:         0.01,
			MaxWinChance:         0.75,
			TrialRounds:          3,
			BaseReward:           50,
			TrialCooldown:        24 * time.Hour,
			WalletChangeCooldown: 24 * time.Hour,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
