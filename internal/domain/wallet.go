package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/snektrials/backend/internal/common"
	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/pkg/api/blockfrost"
	"github.com/snektrials/backend/pkg/dateutil"
	"github.com/snektrials/backend/pkg/errorx"
	"github.com/snektrials/backend/pkg/xcontext"
	"github.com/snektrials/backend/pkg/xredis"
	"gorm.io/gorm"
)

type WalletDomain interface {
	LinkWallet(context.Context, *model.LinkWalletRequest) (*model.LinkWalletResponse, error)
}

type walletDomain struct {
	playerRepo     repository.PlayerRepository
	collectionRepo repository.NFTCollectionRepository
	blockfrost     blockfrost.IEndpoint
	redisClient    xredis.Client

	now func() time.Time
}

func NewWalletDomain(
	playerRepo repository.PlayerRepository,
	collectionRepo repository.NFTCollectionRepository,
	blockfrostEndpoint blockfrost.IEndpoint,
	redisClient xredis.Client,
) *walletDomain {
	return &walletDomain{
		playerRepo:     playerRepo,
		collectionRepo: collectionRepo,
		blockfrost:     blockfrostEndpoint,
		redisClient:    redisClient,
		now:            time.Now,
	}
}

func (d *walletDomain) LinkWallet(
	ctx context.Context, req *model.LinkWalletRequest,
) (*model.LinkWalletResponse, error) {
	cfg := xcontext.Configs(ctx).Game
	address := strings.TrimSpace(req.Address)
	if !strings.HasPrefix(address, "addr") {
		return nil, errorx.New(errorx.BadRequest, "Invalid Cardano address")
	}

	player, err := getOrCreatePlayer(ctx, d.playerRepo, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get player: %v", err)
		return nil, errorx.Unknown
	}

	if player.WalletAddress.Valid && player.WalletAddress.String == address {
		return nil, errorx.New(errorx.AlreadyExists, "This wallet is already linked")
	}

	now := d.now()
	if player.WalletAddress.Valid && player.LastWalletChangeAt.Valid {
		remaining := dateutil.Remaining(
			player.LastWalletChangeAt.Time, cfg.WalletChangeCooldown, now)
		if remaining > 0 {
			return nil, errorx.New(errorx.TooManyRequests,
				"You can change your wallet again in %s", dateutil.FormatCountdown(remaining))
		}
	}

	other, err := d.playerRepo.GetByWallet(ctx, address)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check wallet owner: %v", err)
		return nil, errorx.Unknown
	}

	if err == nil && other.ID != player.ID {
		return nil, errorx.New(errorx.AlreadyExists,
			"This wallet is linked to another player")
	}

	firstLink := !player.WalletAddress.Valid
	if err := d.playerRepo.UpdateWallet(ctx, player.ID, address, now); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update wallet: %v", err)
		return nil, errorx.Unknown
	}

	invalidateNFTCountCache(ctx, d.redisClient, player.ID)

	// Linking a wallet makes the player eligible for the weekly board,
	// so any balance accrued before the link is seeded now.
	if firstLink && player.WeeklyTokens > 0 {
		err := d.redisClient.ZIncrBy(
			ctx, common.RedisKeyLeaderboard, player.WeeklyTokens, player.ID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot seed leaderboard: %v", err)
		}
	}

	nftCount := d.countHoldings(ctx, address)
	if nftCount >= 0 && nftCount != player.NFTCount {
		if err := d.playerRepo.SetNFTCount(ctx, player.ID, nftCount); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update nft count: %v", err)
		}
	}

	if nftCount < 0 {
		nftCount = 0
	}

	return &model.LinkWalletResponse{NFTCount: nftCount}, nil
}

// countHoldings returns a negative count when the chain cannot be
// queried, so the caller keeps the previous count.
func (d *walletDomain) countHoldings(ctx context.Context, address string) int {
	count, _, err := collectionHoldings(ctx, d.blockfrost, d.collectionRepo, address)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot query wallet %s: %v", address, err)
		return -1
	}

	return count
}
