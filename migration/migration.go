package migration

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/pkg/xcontext"
	"gorm.io/gorm"
)

var migrators = []func(ctx context.Context) error{
	migrate0000,
	migrate0001,
}

// Migrate applies every migrator after the version recorded in the
// database, then records the new version.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	version := -1
	var record entity.Migration
	err := xcontext.DB(ctx).Order("version DESC").Take(&record).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err == nil {
		version = record.Version
	}

	for i := version + 1; i < len(migrators); i++ {
		if err := migrators[i](ctx); err != nil {
			return err
		}

		err := xcontext.DB(ctx).Create(&entity.Migration{
			Base:    entity.Base{ID: uuid.NewString()},
			Version: i,
		}).Error
		if err != nil {
			return err
		}
	}

	return nil
}
