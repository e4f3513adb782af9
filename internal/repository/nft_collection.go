package repository

import (
	"context"

	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/pkg/xcontext"
)

type NFTCollectionRepository interface {
	Create(ctx context.Context, collection *entity.NFTCollection) error
	GetByPolicyID(ctx context.Context, policyID string) (*entity.NFTCollection, error)
	GetAll(ctx context.Context) ([]entity.NFTCollection, error)
	DeleteByPolicyID(ctx context.Context, policyID string) error
}

type nftCollectionRepository struct{}

func NewNFTCollectionRepository() *nftCollectionRepository {
	return &nftCollectionRepository{}
}

func (r *nftCollectionRepository) Create(ctx context.Context, collection *entity.NFTCollection) error {
	return xcontext.DB(ctx).Create(collection).Error
}

func (r *nftCollectionRepository) GetByPolicyID(
	ctx context.Context, policyID string,
) (*entity.NFTCollection, error) {
	var result entity.NFTCollection
	if err := xcontext.DB(ctx).Take(&result, "policy_id=?", policyID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *nftCollectionRepository) GetAll(ctx context.Context) ([]entity.NFTCollection, error) {
	var result []entity.NFTCollection
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *nftCollectionRepository) DeleteByPolicyID(ctx context.Context, policyID string) error {
	return xcontext.DB(ctx).
		Where("policy_id=?", policyID).
		Delete(&entity.NFTCollection{}).Error
}
