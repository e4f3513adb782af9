package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/pkg/api/blockfrost"
	"github.com/snektrials/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestProfileDomain() *profileDomain {
	domain := NewProfileDomain(
		repository.NewPlayerRepository(),
		repository.NewRewardTransactionRepository(),
		repository.NewNFTCollectionRepository(),
		repository.NewGameSettingRepository(),
		&testutil.MockBlockfrostEndpoint{},
		&testutil.MockRedisClient{},
	)
	domain.now = func() time.Time { return testutil.FixtureStartTime }
	return domain
}

func Test_profileDomain_GetMyProfile(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player1")
	testutil.CreateFixtureContext(ctx)

	domain := newTestProfileDomain()
	domain.blockfrost = &testutil.MockBlockfrostEndpoint{
		AddressAmountsFunc: func(ctx context.Context, address string) ([]blockfrost.Amount, error) {
			require.Equal(t, "addr1player1wallet", address)
			return []blockfrost.Amount{
				{Unit: blockfrost.LovelaceUnit, Quantity: 5_000_000},
				{Unit: testutil.Collection1.PolicyID + "736e656b31", Quantity: 1},
				{Unit: testutil.Collection1.PolicyID + "736e656b32", Quantity: 1},
			}, nil
		},
	}

	resp, err := domain.GetMyProfile(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, "player1", resp.ID)
	require.Equal(t, "addr1player1wallet", resp.WalletAddress)
	require.Equal(t, int64(500), resp.TotalTokens)
	require.Equal(t, int64(100), resp.WeeklyTokens)

	// Holdings come from the chain, with a per collection breakdown and
	// the win chance they grant.
	require.Equal(t, 2, resp.NFTCount)
	require.Equal(t, []model.CollectionHolding{
		{PolicyID: testutil.Collection1.PolicyID, Name: "Snek OGs", Count: 2},
	}, resp.Collections)
	require.InDelta(t, 0.52, resp.WinChance, 1e-9)

	// Last trial was two days ago and there is no claim lock.
	require.Equal(t, "Ready", resp.TrialCountdown)
	require.Equal(t, "Ready", resp.ClaimCountdown)
}

func Test_profileDomain_GetMyProfile_PersistsRefreshedCount(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player1")
	testutil.CreateFixtureContext(ctx)

	domain := newTestProfileDomain()
	domain.blockfrost = &testutil.MockBlockfrostEndpoint{
		AddressAmountsFunc: func(ctx context.Context, address string) ([]blockfrost.Amount, error) {
			return []blockfrost.Amount{
				{Unit: testutil.Collection1.PolicyID + "736e656b31", Quantity: 1},
			}, nil
		},
	}

	// Player1 was stored with two assets but the wallet now holds one.
	resp, err := domain.GetMyProfile(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 1, resp.NFTCount)

	player, err := repository.NewPlayerRepository().GetByID(ctx, "player1")
	require.NoError(t, err)
	require.Equal(t, 1, player.NFTCount)
}

func Test_profileDomain_GetMyProfile_ChainUnavailable(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player1")
	testutil.CreateFixtureContext(ctx)

	domain := newTestProfileDomain()
	domain.blockfrost = &testutil.MockBlockfrostEndpoint{
		AddressAmountsFunc: func(ctx context.Context, address string) ([]blockfrost.Amount, error) {
			return nil, errors.New("blockfrost is down")
		},
	}

	// The stored count carries the profile, without a breakdown.
	resp, err := domain.GetMyProfile(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 2, resp.NFTCount)
	require.Empty(t, resp.Collections)
	require.InDelta(t, 0.52, resp.WinChance, 1e-9)
}

func Test_profileDomain_GetMyProfile_NoWallet(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player2")
	testutil.CreateFixtureContext(ctx)

	domain := newTestProfileDomain()
	resp, err := domain.GetMyProfile(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, resp.WalletAddress)
	require.Equal(t, 0, resp.NFTCount)
	require.Empty(t, resp.Collections)
	require.InDelta(t, 0.5, resp.WinChance, 1e-9)
}

func Test_profileDomain_GetPayoutHistory(t *testing.T) {
	ctx := testutil.MockContextWithUserID("player1")
	testutil.CreateFixtureContext(ctx)

	txRepo := repository.NewRewardTransactionRepository()
	for _, hash := range []string{"tx1", "tx2"} {
		err := txRepo.Create(ctx, &entity.RewardTransaction{
			Base:     entity.Base{ID: uuid.NewString()},
			TxHash:   hash,
			PlayerID: "player1",
			Amount:   100,
		})
		require.NoError(t, err)
	}

	domain := newTestProfileDomain()
	domain.txRepo = txRepo
	resp, err := domain.GetPayoutHistory(ctx, nil)
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
}
