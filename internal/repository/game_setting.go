package repository

import (
	"context"

	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type GameSettingRepository interface {
	Upsert(ctx context.Context, setting *entity.GameSetting) error
	Get(ctx context.Context, key string) (*entity.GameSetting, error)
	GetAll(ctx context.Context) ([]entity.GameSetting, error)
}

type gameSettingRepository struct{}

func NewGameSettingRepository() *gameSettingRepository {
	return &gameSettingRepository{}
}

func (r *gameSettingRepository) Upsert(ctx context.Context, setting *entity.GameSetting) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(setting).Error
}

func (r *gameSettingRepository) Get(ctx context.Context, key string) (*entity.GameSetting, error) {
	var result entity.GameSetting
	if err := xcontext.DB(ctx).Take(&result, "`key`=?", key).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *gameSettingRepository) GetAll(ctx context.Context) ([]entity.GameSetting, error) {
	var result []entity.GameSetting
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
