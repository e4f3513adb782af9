package entity

import (
	"context"

	"github.com/snektrials/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Player{},
		&RewardTransaction{},
		&NFTCollection{},
		&GameSetting{},
		&Migration{},
	)
}
