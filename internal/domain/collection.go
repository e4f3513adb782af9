package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/snektrials/backend/internal/common"
	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/pkg/errorx"
	"github.com/snektrials/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CollectionDomain interface {
	Create(context.Context, *model.CreateCollectionRequest) (*model.CreateCollectionResponse, error)
	GetAll(context.Context, *model.GetCollectionsRequest) (*model.GetCollectionsResponse, error)
	Delete(context.Context, *model.DeleteCollectionRequest) (*model.DeleteCollectionResponse, error)
}

type collectionDomain struct {
	collectionRepo     repository.NFTCollectionRepository
	globalRoleVerifier *common.GlobalRoleVerifier
}

func NewCollectionDomain(
	collectionRepo repository.NFTCollectionRepository,
	globalRoleVerifier *common.GlobalRoleVerifier,
) *collectionDomain {
	return &collectionDomain{
		collectionRepo:     collectionRepo,
		globalRoleVerifier: globalRoleVerifier,
	}
}

func (d *collectionDomain) Create(
	ctx context.Context, req *model.CreateCollectionRequest,
) (*model.CreateCollectionResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	policyID := strings.ToLower(strings.TrimSpace(req.PolicyID))
	if len(policyID) != 56 {
		return nil, errorx.New(errorx.BadRequest, "Policy id must be 56 hex characters")
	}

	if _, err := d.collectionRepo.GetByPolicyID(ctx, policyID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This collection is already registered")
	}

	err := d.collectionRepo.Create(ctx, &entity.NFTCollection{
		Base:     entity.Base{ID: uuid.NewString()},
		PolicyID: policyID,
		Name:     req.Name,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create collection: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCollectionResponse{}, nil
}

func (d *collectionDomain) GetAll(
	ctx context.Context, req *model.GetCollectionsRequest,
) (*model.GetCollectionsResponse, error) {
	collections, err := d.collectionRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collections: %v", err)
		return nil, errorx.Unknown
	}

	data := make([]model.NFTCollection, 0, len(collections))
	for _, collection := range collections {
		data = append(data, model.NFTCollection{
			PolicyID: collection.PolicyID,
			Name:     collection.Name,
		})
	}

	return &model.GetCollectionsResponse{Data: data}, nil
}

func (d *collectionDomain) Delete(
	ctx context.Context, req *model.DeleteCollectionRequest,
) (*model.DeleteCollectionResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if _, err := d.collectionRepo.GetByPolicyID(ctx, req.PolicyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found collection")
		}

		xcontext.Logger(ctx).Errorf("Cannot get collection: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.collectionRepo.DeleteByPolicyID(ctx, req.PolicyID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete collection: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCollectionResponse{}, nil
}
