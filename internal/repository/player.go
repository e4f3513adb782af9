package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PlayerRepository interface {
	Create(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	GetByWallet(ctx context.Context, address string) (*entity.Player, error)
	UpdateWallet(ctx context.Context, id, address string, changedAt time.Time) error
	AddTokens(ctx context.Context, id string, amount int64) error
	StampTrial(ctx context.Context, id string, playedAt time.Time) error
	ClearWeekly(ctx context.Context, id string, resetAt time.Time) error
	SetRole(ctx context.Context, id, role string) error
	SetNFTCount(ctx context.Context, id string, count int) error
	ResetProgress(ctx context.Context, id string) error
	TopByWeekly(ctx context.Context, limit int) ([]entity.Player, error)
	Count(ctx context.Context) (int64, error)
}

type playerRepository struct{}

func NewPlayerRepository() *playerRepository {
	return &playerRepository{}
}

func (r *playerRepository) Create(ctx context.Context, player *entity.Player) error {
	return xcontext.DB(ctx).Create(player).Error
}

func (r *playerRepository) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	var result entity.Player
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *playerRepository) GetByWallet(ctx context.Context, address string) (*entity.Player, error) {
	var result entity.Player
	if err := xcontext.DB(ctx).Take(&result, "wallet_address=?", address).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *playerRepository) UpdateWallet(
	ctx context.Context, id, address string, changedAt time.Time,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Player{}).
		Where("id=?", id).
		Updates(map[string]any{
			"wallet_address":        address,
			"last_wallet_change_at": sql.NullTime{Valid: true, Time: changedAt},
		})
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *playerRepository) AddTokens(ctx context.Context, id string, amount int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Player{}).
		Where("id=?", id).
		Updates(map[string]any{
			"total_tokens":  gorm.Expr("total_tokens+?", amount),
			"weekly_tokens": gorm.Expr("weekly_tokens+?", amount),
		})
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *playerRepository) StampTrial(ctx context.Context, id string, playedAt time.Time) error {
	return xcontext.DB(ctx).
		Model(&entity.Player{}).
		Where("id=?", id).
		Updates(map[string]any{
			"last_trial_at": sql.NullTime{Valid: true, Time: playedAt},
			"first_play_at": gorm.Expr("COALESCE(first_play_at, ?)", playedAt),
		}).Error
}

func (r *playerRepository) ClearWeekly(ctx context.Context, id string, resetAt time.Time) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Player{}).
		Where("id=?", id).
		Updates(map[string]any{
			"weekly_tokens":   0,
			"weekly_reset_at": sql.NullTime{Valid: true, Time: resetAt},
		})
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *playerRepository) SetRole(ctx context.Context, id, role string) error {
	return xcontext.DB(ctx).
		Model(&entity.Player{}).
		Where("id=?", id).
		Update("role", role).Error
}

func (r *playerRepository) SetNFTCount(ctx context.Context, id string, count int) error {
	return xcontext.DB(ctx).
		Model(&entity.Player{}).
		Where("id=?", id).
		Update("nft_count", count).Error
}

func (r *playerRepository) ResetProgress(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Model(&entity.Player{}).
		Where("id=?", id).
		Updates(map[string]any{
			"total_tokens":    0,
			"weekly_tokens":   0,
			"last_trial_at":   sql.NullTime{},
			"weekly_reset_at": sql.NullTime{},
		}).Error
}

// TopByWeekly ranks the current accrual cycle. Only players who have
// linked a wallet and fought at least one trial are eligible.
func (r *playerRepository) TopByWeekly(ctx context.Context, limit int) ([]entity.Player, error) {
	var result []entity.Player
	err := xcontext.DB(ctx).
		Where("weekly_tokens > 0").
		Where("wallet_address IS NOT NULL").
		Where("last_trial_at IS NOT NULL").
		Order("weekly_tokens DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *playerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.Player{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
