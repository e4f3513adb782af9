package domain

import (
	"context"
	"time"

	"github.com/snektrials/backend/internal/common"
	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/pkg/api/blockfrost"
	"github.com/snektrials/backend/pkg/crypto"
	"github.com/snektrials/backend/pkg/dateutil"
	"github.com/snektrials/backend/pkg/errorx"
	"github.com/snektrials/backend/pkg/xcontext"
	"github.com/snektrials/backend/pkg/xredis"
)

const nftCountCacheTTL = 10 * time.Minute

var winActions = []string{
	"You strike true and the serpent recoils!",
	"A feint, a lunge, the beast staggers!",
	"Your venom-proof scales turn the attack!",
}

var loseActions = []string{
	"The serpent's tail sweeps you off your feet!",
	"Fangs flash and you barely escape with your life!",
	"The beast's hiss rattles your resolve!",
}

type TrialDomain interface {
	Play(context.Context, *model.PlayTrialRequest) (*model.PlayTrialResponse, error)
	GetStatus(context.Context, *model.GetTrialStatusRequest) (*model.GetTrialStatusResponse, error)
}

type trialDomain struct {
	playerRepo      repository.PlayerRepository
	collectionRepo  repository.NFTCollectionRepository
	gameSettingRepo repository.GameSettingRepository
	blockfrost      blockfrost.IEndpoint
	redisClient     xredis.Client

	roll func() float64
	now  func() time.Time
}

func NewTrialDomain(
	playerRepo repository.PlayerRepository,
	collectionRepo repository.NFTCollectionRepository,
	gameSettingRepo repository.GameSettingRepository,
	blockfrostEndpoint blockfrost.IEndpoint,
	redisClient xredis.Client,
) *trialDomain {
	return &trialDomain{
		playerRepo:      playerRepo,
		collectionRepo:  collectionRepo,
		gameSettingRepo: gameSettingRepo,
		blockfrost:      blockfrostEndpoint,
		redisClient:     redisClient,
		roll:            crypto.RandFloat64,
		now:             time.Now,
	}
}

func (d *trialDomain) Play(
	ctx context.Context, req *model.PlayTrialRequest,
) (*model.PlayTrialResponse, error) {
	cfg := xcontext.Configs(ctx).Game
	player, err := getOrCreatePlayer(ctx, d.playerRepo, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get player: %v", err)
		return nil, errorx.Unknown
	}

	now := d.now()
	cooldown := d.trialCooldown(ctx)
	if player.LastTrialAt.Valid {
		remaining := dateutil.Remaining(player.LastTrialAt.Time, cooldown, now)
		if remaining > 0 {
			return nil, errorx.New(errorx.TooManyRequests,
				"Your next trial is ready in %s", dateutil.FormatCountdown(remaining))
		}
	}

	nftCount := d.nftCount(ctx, player)
	chance := winChance(ctx, d.gameSettingRepo, nftCount)

	rounds := make([]model.TrialRound, 0, cfg.TrialRounds)
	wins := 0
	for i := 0; i < cfg.TrialRounds; i++ {
		won := d.roll() < chance
		action := loseActions[crypto.RandIntn(len(loseActions))]
		if won {
			wins++
			action = winActions[crypto.RandIntn(len(winActions))]
		}

		rounds = append(rounds, model.TrialRound{Round: i + 1, Won: won, Action: action})
	}

	victory := wins*2 > cfg.TrialRounds
	var reward int64
	switch {
	case wins == cfg.TrialRounds:
		reward = cfg.BaseReward * 2
	case victory:
		reward = cfg.BaseReward
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.playerRepo.StampTrial(ctx, player.ID, now); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot stamp trial: %v", err)
		return nil, errorx.Unknown
	}

	if nftCount != player.NFTCount {
		if err := d.playerRepo.SetNFTCount(ctx, player.ID, nftCount); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update nft count: %v", err)
			return nil, errorx.Unknown
		}
	}

	if reward > 0 {
		if err := d.playerRepo.AddTokens(ctx, player.ID, reward); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot add reward: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	// Only wallet-linked players appear on the weekly board; a player
	// without a wallet is seeded when they link one.
	if reward > 0 && player.WalletAddress.Valid {
		err := d.redisClient.ZIncrBy(ctx, common.RedisKeyLeaderboard, reward, player.ID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update leaderboard: %v", err)
		}
	}

	return &model.PlayTrialResponse{
		Rounds:    rounds,
		Wins:      wins,
		Victory:   victory,
		Reward:    reward,
		WinChance: chance,
		NFTCount:  nftCount,
	}, nil
}

func (d *trialDomain) GetStatus(
	ctx context.Context, req *model.GetTrialStatusRequest,
) (*model.GetTrialStatusResponse, error) {
	player, err := getOrCreatePlayer(ctx, d.playerRepo, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get player: %v", err)
		return nil, errorx.Unknown
	}

	var remaining time.Duration
	if player.LastTrialAt.Valid {
		remaining = dateutil.Remaining(player.LastTrialAt.Time, d.trialCooldown(ctx), d.now())
	}

	nftCount := d.nftCount(ctx, player)
	return &model.GetTrialStatusResponse{
		Ready:     remaining <= 0,
		Countdown: dateutil.FormatCountdown(remaining),
		WinChance: winChance(ctx, d.gameSettingRepo, nftCount),
		NFTCount:  nftCount,
	}, nil
}

// nftCount resolves how many registered collection assets the player
// holds, preferring a short-lived cache, then the chain, then the last
// count stored on the player.
func (d *trialDomain) nftCount(ctx context.Context, player *entity.Player) int {
	if !player.WalletAddress.Valid {
		return 0
	}

	var cached int
	if err := d.redisClient.GetObj(ctx, common.RedisKeyNFTCount(player.ID), &cached); err == nil {
		return cached
	}

	count, _, err := collectionHoldings(ctx, d.blockfrost, d.collectionRepo, player.WalletAddress.String)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot query wallet %s: %v", player.WalletAddress.String, err)
		return player.NFTCount
	}

	err = d.redisClient.SetObj(ctx, common.RedisKeyNFTCount(player.ID), count, nftCountCacheTTL)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache nft count: %v", err)
	}

	return count
}

func (d *trialDomain) trialCooldown(ctx context.Context) time.Duration {
	cfg := xcontext.Configs(ctx).Game
	hours := settingFloat(ctx, d.gameSettingRepo, entity.SettingCooldownHours, 0)
	if hours > 0 {
		return time.Duration(hours * float64(time.Hour))
	}

	return cfg.TrialCooldown
}
