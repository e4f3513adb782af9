package repository

import (
	"context"

	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type RewardTransactionRepository interface {
	Create(ctx context.Context, tx *entity.RewardTransaction) error
	GetByTxHash(ctx context.Context, txHash string) (*entity.RewardTransaction, error)
	GetByPlayerID(ctx context.Context, playerID string, limit int) ([]entity.RewardTransaction, error)
	TotalPaid(ctx context.Context) (int64, error)
}

type rewardTransactionRepository struct{}

func NewRewardTransactionRepository() *rewardTransactionRepository {
	return &rewardTransactionRepository{}
}

// Create appends one audit record. A duplicate tx hash is silently
// ignored so the same confirmed transfer is never recorded twice.
func (r *rewardTransactionRepository) Create(ctx context.Context, tx *entity.RewardTransaction) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tx_hash"}},
			DoNothing: true,
		}).
		Create(tx).Error
}

func (r *rewardTransactionRepository) GetByTxHash(
	ctx context.Context, txHash string,
) (*entity.RewardTransaction, error) {
	var result entity.RewardTransaction
	if err := xcontext.DB(ctx).Take(&result, "tx_hash=?", txHash).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *rewardTransactionRepository) GetByPlayerID(
	ctx context.Context, playerID string, limit int,
) ([]entity.RewardTransaction, error) {
	var result []entity.RewardTransaction
	err := xcontext.DB(ctx).
		Where("player_id=?", playerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *rewardTransactionRepository) TotalPaid(ctx context.Context) (int64, error) {
	var total int64
	err := xcontext.DB(ctx).
		Model(&entity.RewardTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Take(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}
