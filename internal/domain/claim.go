package domain

import (
	"context"
	"errors"

	"github.com/snektrials/backend/config"
	"github.com/snektrials/backend/internal/common"
	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/internal/treasury"
	"github.com/snektrials/backend/pkg/dateutil"
	"github.com/snektrials/backend/pkg/errorx"
	"github.com/snektrials/backend/pkg/xcontext"
	"github.com/snektrials/backend/pkg/xredis"
	"gorm.io/gorm"
)

type ClaimDomain interface {
	Claim(context.Context, *model.ClaimRequest) (*model.ClaimResponse, error)
	ForceClaim(context.Context, *model.ForceClaimRequest) (*model.ForceClaimResponse, error)
}

type claimDomain struct {
	playerRepo         repository.PlayerRepository
	settler            *treasury.Settler
	globalRoleVerifier *common.GlobalRoleVerifier
	redisClient        xredis.Client
	bosses             []config.Boss
}

func NewClaimDomain(
	playerRepo repository.PlayerRepository,
	settler *treasury.Settler,
	globalRoleVerifier *common.GlobalRoleVerifier,
	redisClient xredis.Client,
	bosses []config.Boss,
) *claimDomain {
	return &claimDomain{
		playerRepo:         playerRepo,
		settler:            settler,
		globalRoleVerifier: globalRoleVerifier,
		redisClient:        redisClient,
		bosses:             bosses,
	}
}

// dropFromLeaderboard removes a settled player from the weekly board,
// mirroring the cleared balance.
func (d *claimDomain) dropFromLeaderboard(ctx context.Context, playerID string) {
	if err := d.redisClient.ZRem(ctx, common.RedisKeyLeaderboard, playerID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot remove player from leaderboard: %v", err)
	}
}

func (d *claimDomain) Claim(
	ctx context.Context, req *model.ClaimRequest,
) (*model.ClaimResponse, error) {
	cfg := xcontext.Configs(ctx)
	player, err := d.playerRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found player")
		}

		xcontext.Logger(ctx).Errorf("Cannot get player: %v", err)
		return nil, errorx.Unknown
	}

	opts := treasury.SettleOptions{NativeFloor: cfg.Treasury.ClaimNativeFloor}

	var bossName string
	if boss := config.FindBoss(d.bosses, cfg.Game.ActiveBoss); boss != nil {
		bossName = boss.Name
		opts.Multiplier = boss.Multiplier
	}

	receipt, err := d.settler.Settle(ctx, player, opts)
	if err != nil {
		countPayoutFailure("claim", err)
		return nil, d.claimError(ctx, err)
	}

	common.PromCounters[common.PayoutTotal].WithLabelValues("claim").Inc()
	d.dropFromLeaderboard(ctx, player.ID)

	resp := &model.ClaimResponse{
		TxHash:     receipt.TxHash,
		Amount:     receipt.Paid,
		BaseAmount: receipt.Base,
	}
	if bossName != "" && receipt.Paid != receipt.Base {
		resp.Boss = bossName
		resp.Multiplier = opts.Multiplier
	}

	return resp, nil
}

func (d *claimDomain) ForceClaim(
	ctx context.Context, req *model.ForceClaimRequest,
) (*model.ForceClaimResponse, error) {
	cfg := xcontext.Configs(ctx)
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if !cfg.Treasury.TestMode {
		return nil, errorx.New(errorx.PermissionDenied,
			"Force claim is only available in test mode")
	}

	player, err := d.playerRepo.GetByID(ctx, req.PlayerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found player")
		}

		xcontext.Logger(ctx).Errorf("Cannot get player: %v", err)
		return nil, errorx.Unknown
	}

	receipt, err := d.settler.Settle(ctx, player, treasury.SettleOptions{
		SkipLockCheck: true,
		Cap:           cfg.Treasury.MaxForceClaim,
		NativeFloor:   cfg.Treasury.ForceClaimNativeFloor,
	})
	if err != nil {
		countPayoutFailure("force_claim", err)
		if errors.Is(err, treasury.ErrAmountExceedsCap) {
			return nil, errorx.New(errorx.ExceedsCap,
				"Pending balance exceeds the force claim cap of %d", cfg.Treasury.MaxForceClaim)
		}

		return nil, d.claimError(ctx, err)
	}

	common.PromCounters[common.PayoutTotal].WithLabelValues("force_claim").Inc()
	d.dropFromLeaderboard(ctx, player.ID)

	return &model.ForceClaimResponse{TxHash: receipt.TxHash, Amount: receipt.Paid}, nil
}

// claimError converts settlement failures into user-safe responses.
// Treasury exhaustion and an unreadable oracle read the same to the
// player; operators learn the difference from logs and metrics.
func (d *claimDomain) claimError(ctx context.Context, err error) error {
	var lockErr treasury.ClaimLockedError

	switch {
	case errors.As(err, &lockErr):
		return errorx.New(errorx.ClaimLocked,
			"Your rewards unlock in %s", dateutil.FormatCountdown(lockErr.Remaining))

	case errors.Is(err, treasury.ErrNothingToClaim):
		return errorx.New(errorx.NothingToClaim, "You have no rewards to claim")

	case errors.Is(err, treasury.ErrInvalidAddress):
		return errorx.New(errorx.BadRequest, "Link a wallet before claiming")

	case errors.Is(err, treasury.ErrTreasuryInsufficient),
		errors.Is(err, treasury.ErrOracleUnavailable):
		return errorx.New(errorx.TreasuryInsufficient,
			"Rewards are temporarily unavailable, please try again later")

	case errors.Is(err, treasury.ErrRateLimited):
		return errorx.New(errorx.TooManyRequests,
			"Another payout is in flight, try again in a few seconds")

	case errors.Is(err, treasury.ErrTransferFailed):
		return errorx.New(errorx.TransferFailed,
			"Could not send your rewards, nothing was deducted, please try again")

	default:
		xcontext.Logger(ctx).Errorf("Cannot settle claim: %v", err)
		return errorx.Unknown
	}
}
