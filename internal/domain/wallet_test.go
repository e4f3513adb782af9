package domain

import (
	"context"
	"testing"
	"time"

	"github.com/snektrials/backend/internal/common"
	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/pkg/errorx"
	"github.com/snektrials/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestWalletDomain() *walletDomain {
	domain := NewWalletDomain(
		repository.NewPlayerRepository(),
		repository.NewNFTCollectionRepository(),
		&testutil.MockBlockfrostEndpoint{},
		&testutil.MockRedisClient{},
	)
	domain.now = func() time.Time { return testutil.FixtureStartTime }
	return domain
}

func Test_walletDomain_LinkWallet(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player2")
	testutil.CreateFixtureContext(ctx)

	domain := newTestWalletDomain()
	_, err := domain.LinkWallet(ctx, &model.LinkWalletRequest{Address: "addr1newwallet"})
	require.NoError(t, err)

	player, err := repository.NewPlayerRepository().GetByID(ctx, "player2")
	require.NoError(t, err)
	require.True(t, player.WalletAddress.Valid)
	require.Equal(t, "addr1newwallet", player.WalletAddress.String)
	require.True(t, player.LastWalletChangeAt.Valid)
}

func Test_walletDomain_LinkWallet_SeedsLeaderboard(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player2")
	testutil.CreateFixtureContext(ctx)

	var seeded int64
	domain := newTestWalletDomain()
	domain.redisClient = &testutil.MockRedisClient{
		ZIncrByFunc: func(ctx context.Context, key string, amount int64, member string) error {
			require.Equal(t, common.RedisKeyLeaderboard, key)
			require.Equal(t, "player2", member)
			seeded += amount
			return nil
		},
	}

	// Player2 accrued a weekly balance before ever linking a wallet, so
	// the first link puts that balance on the board.
	_, err := domain.LinkWallet(ctx, &model.LinkWalletRequest{Address: "addr1newwallet"})
	require.NoError(t, err)
	require.Equal(t, int64(40), seeded)
}

func Test_walletDomain_LinkWallet_InvalidAddress(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player2")
	testutil.CreateFixtureContext(ctx)

	domain := newTestWalletDomain()
	_, err := domain.LinkWallet(ctx, &model.LinkWalletRequest{Address: "stake1abc"})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_walletDomain_LinkWallet_SameWallet(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player1")
	testutil.CreateFixtureContext(ctx)

	domain := newTestWalletDomain()
	_, err := domain.LinkWallet(ctx, &model.LinkWalletRequest{Address: "addr1player1wallet"})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_walletDomain_LinkWallet_TakenWallet(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player2")
	testutil.CreateFixtureContext(ctx)

	domain := newTestWalletDomain()
	_, err := domain.LinkWallet(ctx, &model.LinkWalletRequest{Address: "addr1player1wallet"})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_walletDomain_LinkWallet_ChangeCooldown(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player2")
	testutil.CreateFixtureContext(ctx)

	domain := newTestWalletDomain()
	_, err := domain.LinkWallet(ctx, &model.LinkWalletRequest{Address: "addr1firstwallet"})
	require.NoError(t, err)

	// Changing again inside the cooldown is refused.
	_, err = domain.LinkWallet(ctx, &model.LinkWalletRequest{Address: "addr1secondwallet"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.TooManyRequests, errx.Code)

	domain.now = func() time.Time { return testutil.FixtureStartTime.Add(24 * time.Hour) }
	_, err = domain.LinkWallet(ctx, &model.LinkWalletRequest{Address: "addr1secondwallet"})
	require.NoError(t, err)
}
