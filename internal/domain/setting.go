package domain

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/snektrials/backend/internal/common"
	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/pkg/errorx"
	"github.com/snektrials/backend/pkg/xcontext"
	"github.com/snektrials/backend/pkg/xredis"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var knownSettings = []string{
	entity.SettingBaseWinChance,
	entity.SettingWeightPerNFT,
	entity.SettingMaxWinChance,
	entity.SettingCooldownHours,
}

type GameSettingDomain interface {
	Set(context.Context, *model.SetGameSettingRequest) (*model.SetGameSettingResponse, error)
	GetAll(context.Context, *model.GetGameSettingsRequest) (*model.GetGameSettingsResponse, error)
	ResetPlayer(context.Context, *model.ResetPlayerRequest) (*model.ResetPlayerResponse, error)
}

type gameSettingDomain struct {
	gameSettingRepo    repository.GameSettingRepository
	playerRepo         repository.PlayerRepository
	globalRoleVerifier *common.GlobalRoleVerifier
	redisClient        xredis.Client
}

func NewGameSettingDomain(
	gameSettingRepo repository.GameSettingRepository,
	playerRepo repository.PlayerRepository,
	globalRoleVerifier *common.GlobalRoleVerifier,
	redisClient xredis.Client,
) *gameSettingDomain {
	return &gameSettingDomain{
		gameSettingRepo:    gameSettingRepo,
		playerRepo:         playerRepo,
		globalRoleVerifier: globalRoleVerifier,
		redisClient:        redisClient,
	}
}

func (d *gameSettingDomain) Set(
	ctx context.Context, req *model.SetGameSettingRequest,
) (*model.SetGameSettingResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if !slices.Contains(knownSettings, req.Key) {
		return nil, errorx.New(errorx.BadRequest, "Unknown setting %s", req.Key)
	}

	value, err := strconv.ParseFloat(req.Value, 64)
	if err != nil || value < 0 {
		return nil, errorx.New(errorx.BadRequest, "Setting value must be a non-negative number")
	}

	err = d.gameSettingRepo.Upsert(ctx, &entity.GameSetting{
		Base:  entity.Base{ID: uuid.NewString()},
		Key:   req.Key,
		Value: req.Value,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert setting: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetGameSettingResponse{}, nil
}

func (d *gameSettingDomain) GetAll(
	ctx context.Context, req *model.GetGameSettingsRequest,
) (*model.GetGameSettingsResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	settings, err := d.gameSettingRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get settings: %v", err)
		return nil, errorx.Unknown
	}

	data := make([]model.GameSetting, 0, len(settings))
	for _, setting := range settings {
		data = append(data, model.GameSetting{Key: setting.Key, Value: setting.Value})
	}

	return &model.GetGameSettingsResponse{Data: data}, nil
}

func (d *gameSettingDomain) ResetPlayer(
	ctx context.Context, req *model.ResetPlayerRequest,
) (*model.ResetPlayerResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if _, err := d.playerRepo.GetByID(ctx, req.PlayerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found player")
		}

		xcontext.Logger(ctx).Errorf("Cannot get player: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.playerRepo.ResetProgress(ctx, req.PlayerID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset player: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.redisClient.ZRem(ctx, common.RedisKeyLeaderboard, req.PlayerID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot remove player from leaderboard: %v", err)
	}

	return &model.ResetPlayerResponse{}, nil
}
