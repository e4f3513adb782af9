package domain

import (
	"context"
	"time"

	"github.com/snektrials/backend/internal/common"
	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/pkg/api/blockfrost"
	"github.com/snektrials/backend/pkg/dateutil"
	"github.com/snektrials/backend/pkg/errorx"
	"github.com/snektrials/backend/pkg/xcontext"
	"github.com/snektrials/backend/pkg/xredis"
)

const payoutHistoryLimit = 20

type ProfileDomain interface {
	GetMyProfile(context.Context, *model.GetMyProfileRequest) (*model.GetMyProfileResponse, error)
	GetPayoutHistory(context.Context, *model.GetPayoutHistoryRequest) (*model.GetPayoutHistoryResponse, error)
}

type profileDomain struct {
	playerRepo      repository.PlayerRepository
	txRepo          repository.RewardTransactionRepository
	collectionRepo  repository.NFTCollectionRepository
	gameSettingRepo repository.GameSettingRepository
	blockfrost      blockfrost.IEndpoint
	redisClient     xredis.Client

	now func() time.Time
}

func NewProfileDomain(
	playerRepo repository.PlayerRepository,
	txRepo repository.RewardTransactionRepository,
	collectionRepo repository.NFTCollectionRepository,
	gameSettingRepo repository.GameSettingRepository,
	blockfrostEndpoint blockfrost.IEndpoint,
	redisClient xredis.Client,
) *profileDomain {
	return &profileDomain{
		playerRepo:      playerRepo,
		txRepo:          txRepo,
		collectionRepo:  collectionRepo,
		gameSettingRepo: gameSettingRepo,
		blockfrost:      blockfrostEndpoint,
		redisClient:     redisClient,
		now:             time.Now,
	}
}

func (d *profileDomain) GetMyProfile(
	ctx context.Context, req *model.GetMyProfileRequest,
) (*model.GetMyProfileResponse, error) {
	cfg := xcontext.Configs(ctx)
	player, err := getOrCreatePlayer(ctx, d.playerRepo, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get player: %v", err)
		return nil, errorx.Unknown
	}

	nftCount, holdings := d.refreshHoldings(ctx, player)

	now := d.now()
	var trialRemaining, claimRemaining time.Duration
	if player.LastTrialAt.Valid {
		trialRemaining = dateutil.Remaining(player.LastTrialAt.Time, cfg.Game.TrialCooldown, now)
	}

	if player.WeeklyResetAt.Valid {
		claimRemaining = dateutil.Remaining(
			player.WeeklyResetAt.Time, cfg.Treasury.ClaimLockWindow, now)
	}

	resp := &model.GetMyProfileResponse{
		ID:             player.ID,
		Role:           player.Role,
		NFTCount:       nftCount,
		Collections:    holdings,
		WinChance:      winChance(ctx, d.gameSettingRepo, nftCount),
		TotalTokens:    player.TotalTokens,
		WeeklyTokens:   player.WeeklyTokens,
		TrialCountdown: dateutil.FormatCountdown(trialRemaining),
		ClaimCountdown: dateutil.FormatCountdown(claimRemaining),
	}
	if player.WalletAddress.Valid {
		resp.WalletAddress = player.WalletAddress.String
	}

	return resp, nil
}

// refreshHoldings reads the wallet live and persists the fresh count.
// When the chain cannot be queried the stored count is kept and no
// breakdown is shown.
func (d *profileDomain) refreshHoldings(
	ctx context.Context, player *entity.Player,
) (int, []model.CollectionHolding) {
	if !player.WalletAddress.Valid {
		return 0, nil
	}

	total, breakdown, err := collectionHoldings(
		ctx, d.blockfrost, d.collectionRepo, player.WalletAddress.String)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot query wallet %s: %v", player.WalletAddress.String, err)
		return player.NFTCount, nil
	}

	if total != player.NFTCount {
		if err := d.playerRepo.SetNFTCount(ctx, player.ID, total); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update nft count: %v", err)
		}
	}

	err = d.redisClient.SetObj(ctx, common.RedisKeyNFTCount(player.ID), total, nftCountCacheTTL)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache nft count: %v", err)
	}

	return total, breakdown
}

func (d *profileDomain) GetPayoutHistory(
	ctx context.Context, req *model.GetPayoutHistoryRequest,
) (*model.GetPayoutHistoryResponse, error) {
	txs, err := d.txRepo.GetByPlayerID(ctx, xcontext.RequestUserID(ctx), payoutHistoryLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get payout history: %v", err)
		return nil, errorx.Unknown
	}

	data := make([]model.PayoutTx, 0, len(txs))
	for _, tx := range txs {
		data = append(data, model.PayoutTx{
			TxHash:    tx.TxHash,
			Amount:    tx.Amount,
			CreatedAt: tx.CreatedAt.Format(time.RFC3339),
		})
	}

	return &model.GetPayoutHistoryResponse{Data: data}, nil
}
