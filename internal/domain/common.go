package domain

import (
	"context"
	"errors"
	"strconv"

	"github.com/snektrials/backend/internal/common"
	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/internal/treasury"
	"github.com/snektrials/backend/pkg/api/blockfrost"
	"github.com/snektrials/backend/pkg/xcontext"
	"github.com/snektrials/backend/pkg/xredis"
	"gorm.io/gorm"
)

// getOrCreatePlayer loads the requesting player, creating the row on
// first contact.
func getOrCreatePlayer(
	ctx context.Context, playerRepo repository.PlayerRepository, playerID string,
) (*entity.Player, error) {
	player, err := playerRepo.GetByID(ctx, playerID)
	if err == nil {
		return player, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	player = &entity.Player{
		Base: entity.Base{ID: playerID},
		Role: entity.UserRole,
	}
	if err := playerRepo.Create(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

func countPayoutFailure(kind string, err error) {
	var lockErr treasury.ClaimLockedError

	reason := "unknown"
	switch {
	case errors.As(err, &lockErr):
		reason = "claim_locked"
	case errors.Is(err, treasury.ErrNothingToClaim):
		reason = "nothing_to_claim"
	case errors.Is(err, treasury.ErrAmountExceedsCap):
		reason = "exceeds_cap"
	case errors.Is(err, treasury.ErrTreasuryInsufficient):
		reason = "treasury_insufficient"
	case errors.Is(err, treasury.ErrOracleUnavailable):
		reason = "oracle_unavailable"
	case errors.Is(err, treasury.ErrRateLimited):
		reason = "rate_limited"
	case errors.Is(err, treasury.ErrInvalidAddress):
		reason = "invalid_address"
	case errors.Is(err, treasury.ErrInvalidAmount):
		reason = "invalid_amount"
	case errors.Is(err, treasury.ErrTransferFailed):
		reason = "transfer_failed"
	}

	common.PromCounters[common.PayoutFailure].WithLabelValues(kind, reason).Inc()
}

func invalidateNFTCountCache(ctx context.Context, redisClient xredis.Client, playerID string) {
	if err := redisClient.Del(ctx, common.RedisKeyNFTCount(playerID)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate nft count cache: %v", err)
	}
}

// collectionHoldings queries the wallet's assets and tallies them per
// registered collection.
func collectionHoldings(
	ctx context.Context,
	endpoint blockfrost.IEndpoint,
	collectionRepo repository.NFTCollectionRepository,
	address string,
) (int, []model.CollectionHolding, error) {
	amounts, err := endpoint.AddressAmounts(ctx, address)
	if err != nil {
		return 0, nil, err
	}

	collections, err := collectionRepo.GetAll(ctx)
	if err != nil {
		return 0, nil, err
	}

	total := 0
	breakdown := make([]model.CollectionHolding, 0, len(collections))
	for _, collection := range collections {
		count := blockfrost.CountByPolicy(amounts, collection.PolicyID)
		total += count
		breakdown = append(breakdown, model.CollectionHolding{
			PolicyID: collection.PolicyID,
			Name:     collection.Name,
			Count:    count,
		})
	}

	return total, breakdown, nil
}

func settingFloat(
	ctx context.Context,
	gameSettingRepo repository.GameSettingRepository,
	key string,
	fallback float64,
) float64 {
	setting, err := gameSettingRepo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot get setting %s: %v", key, err)
		}

		return fallback
	}

	value, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Invalid setting %s=%s", key, setting.Value)
		return fallback
	}

	return value
}

func winChance(
	ctx context.Context, gameSettingRepo repository.GameSettingRepository, nftCount int,
) float64 {
	cfg := xcontext.Configs(ctx).Game
	base := settingFloat(ctx, gameSettingRepo, entity.SettingBaseWinChance, cfg.BaseWinChance)
	weight := settingFloat(ctx, gameSettingRepo, entity.SettingWeightPerNFT, cfg.WeightPerNFT)
	max := settingFloat(ctx, gameSettingRepo, entity.SettingMaxWinChance, cfg.MaxWinChance)

	chance := base + weight*float64(nftCount)
	if chance > max {
		chance = max
	}

	return chance
}
