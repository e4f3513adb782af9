package domain

import (
	"context"
	"testing"

	"github.com/snektrials/backend/config"
	"github.com/snektrials/backend/internal/common"
	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/internal/treasury"
	"github.com/snektrials/backend/pkg/errorx"
	"github.com/snektrials/backend/pkg/testutil"
	"github.com/snektrials/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestSettler(executor treasury.Executor) *treasury.Settler {
	limiter := treasury.NewLimiter(0)
	return treasury.NewSettler(
		repository.NewPlayerRepository(),
		repository.NewRewardTransactionRepository(),
		&testutil.MockOracle{},
		limiter,
		executor,
		&testutil.MockNotifier{},
	)
}

func Test_claimDomain_Claim(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player1")
	testutil.CreateFixtureContext(ctx)

	playerRepo := repository.NewPlayerRepository()
	domain := NewClaimDomain(
		playerRepo, newTestSettler(&testutil.MockExecutor{}),
		common.NewGlobalRoleVerifier(playerRepo), &testutil.MockRedisClient{}, nil)

	resp, err := domain.Claim(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, "mocktxhash", resp.TxHash)
	require.Equal(t, int64(100), resp.Amount)
	require.Equal(t, int64(100), resp.BaseAmount)
	require.Empty(t, resp.Boss)

	player, err := playerRepo.GetByID(ctx, "player1")
	require.NoError(t, err)
	require.Equal(t, int64(0), player.WeeklyTokens)
	require.Equal(t, int64(500), player.TotalTokens)

	// A second claim is locked for a week.
	require.NoError(t, playerRepo.AddTokens(ctx, "player1", 10))
	_, err = domain.Claim(ctx, nil)
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.ClaimLocked, errx.Code)
}

func Test_claimDomain_Claim_RemovesPlayerFromLeaderboard(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player1")
	testutil.CreateFixtureContext(ctx)

	var removed []string
	redisClient := &testutil.MockRedisClient{
		ZRemFunc: func(ctx context.Context, key string, members ...string) error {
			require.Equal(t, common.RedisKeyLeaderboard, key)
			removed = append(removed, members...)
			return nil
		},
	}

	playerRepo := repository.NewPlayerRepository()
	domain := NewClaimDomain(
		playerRepo, newTestSettler(&testutil.MockExecutor{}),
		common.NewGlobalRoleVerifier(playerRepo), redisClient, nil)

	_, err := domain.Claim(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"player1"}, removed)
}

func Test_claimDomain_Claim_FailedSettlementKeepsLeaderboard(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player1")
	testutil.CreateFixtureContext(ctx)

	executor := &testutil.MockExecutor{
		PayoutFunc: func(ctx context.Context, toAddress string, amount int64) (string, error) {
			return "", treasury.ErrTransferFailed
		},
	}

	redisClient := &testutil.MockRedisClient{
		ZRemFunc: func(ctx context.Context, key string, members ...string) error {
			t.Fatal("player must stay on the board when settlement fails")
			return nil
		},
	}

	playerRepo := repository.NewPlayerRepository()
	domain := NewClaimDomain(
		playerRepo, newTestSettler(executor),
		common.NewGlobalRoleVerifier(playerRepo), redisClient, nil)

	_, err := domain.Claim(ctx, nil)
	require.Error(t, err)
}

func Test_claimDomain_Claim_WithBossMultiplier(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player1")
	testutil.CreateFixtureContext(ctx)

	cfg := xcontext.Configs(ctx)
	cfg.Game.ActiveBoss = "Hydra"
	ctx = xcontext.WithConfigs(ctx, cfg)

	playerRepo := repository.NewPlayerRepository()
	domain := NewClaimDomain(
		playerRepo, newTestSettler(&testutil.MockExecutor{}),
		common.NewGlobalRoleVerifier(playerRepo), &testutil.MockRedisClient{},
		[]config.Boss{{Name: "Hydra", Multiplier: 1.5}})

	resp, err := domain.Claim(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, int64(100), resp.BaseAmount)
	require.Equal(t, int64(150), resp.Amount)
	require.Equal(t, "Hydra", resp.Boss)
	require.Equal(t, 1.5, resp.Multiplier)
}

func Test_claimDomain_Claim_NoWallet(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player2")
	testutil.CreateFixtureContext(ctx)

	playerRepo := repository.NewPlayerRepository()
	domain := NewClaimDomain(
		playerRepo, newTestSettler(&testutil.MockExecutor{}),
		common.NewGlobalRoleVerifier(playerRepo), &testutil.MockRedisClient{}, nil)

	_, err := domain.Claim(ctx, nil)
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_claimDomain_Claim_TransferFailureKeepsBalance(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player1")
	testutil.CreateFixtureContext(ctx)

	executor := &testutil.MockExecutor{
		PayoutFunc: func(ctx context.Context, toAddress string, amount int64) (string, error) {
			return "", treasury.ErrTransferFailed
		},
	}

	playerRepo := repository.NewPlayerRepository()
	domain := NewClaimDomain(
		playerRepo, newTestSettler(executor),
		common.NewGlobalRoleVerifier(playerRepo), &testutil.MockRedisClient{}, nil)

	_, err := domain.Claim(ctx, nil)
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.TransferFailed, errx.Code)

	player, err := playerRepo.GetByID(ctx, "player1")
	require.NoError(t, err)
	require.Equal(t, int64(100), player.WeeklyTokens)
}

func Test_claimDomain_ForceClaim(t *testing.T) {
	ctx := testutil.MockContextWithUserID("admin")
	testutil.CreateFixtureContext(ctx)

	var removed []string
	redisClient := &testutil.MockRedisClient{
		ZRemFunc: func(ctx context.Context, key string, members ...string) error {
			removed = append(removed, members...)
			return nil
		},
	}

	playerRepo := repository.NewPlayerRepository()
	domain := NewClaimDomain(
		playerRepo, newTestSettler(&testutil.MockExecutor{}),
		common.NewGlobalRoleVerifier(playerRepo), redisClient, nil)

	resp, err := domain.ForceClaim(ctx, &model.ForceClaimRequest{PlayerID: "player1"})
	require.NoError(t, err)
	require.Equal(t, int64(100), resp.Amount)

	player, err := playerRepo.GetByID(ctx, "player1")
	require.NoError(t, err)
	require.Equal(t, int64(0), player.WeeklyTokens)
	require.Equal(t, []string{"player1"}, removed)
}

func Test_claimDomain_ForceClaim_PermissionDenied(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player1")
	testutil.CreateFixtureContext(ctx)

	playerRepo := repository.NewPlayerRepository()
	domain := NewClaimDomain(
		playerRepo, newTestSettler(&testutil.MockExecutor{}),
		common.NewGlobalRoleVerifier(playerRepo), &testutil.MockRedisClient{}, nil)

	_, err := domain.ForceClaim(ctx, &model.ForceClaimRequest{PlayerID: "player2"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_claimDomain_ForceClaim_RequiresTestMode(t *testing.T) {
	ctx := testutil.MockContextWithUserID("admin")
	testutil.CreateFixtureContext(ctx)

	cfg := xcontext.Configs(ctx)
	cfg.Treasury.TestMode = false
	ctx = xcontext.WithConfigs(ctx, cfg)

	playerRepo := repository.NewPlayerRepository()
	domain := NewClaimDomain(
		playerRepo, newTestSettler(&testutil.MockExecutor{}),
		common.NewGlobalRoleVerifier(playerRepo), &testutil.MockRedisClient{}, nil)

	_, err := domain.ForceClaim(ctx, &model.ForceClaimRequest{PlayerID: "player1"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_claimDomain_ForceClaim_ExceedsCap(t *testing.T) {
	ctx := testutil.MockContextWithUserID("admin")
	testutil.CreateFixtureContext(ctx)

	playerRepo := repository.NewPlayerRepository()
	require.NoError(t, playerRepo.AddTokens(ctx, "player1", 2000))

	domain := NewClaimDomain(
		playerRepo, newTestSettler(&testutil.MockExecutor{}),
		common.NewGlobalRoleVerifier(playerRepo), &testutil.MockRedisClient{}, nil)

	_, err := domain.ForceClaim(ctx, &model.ForceClaimRequest{PlayerID: "player1"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.ExceedsCap, errx.Code)
}
