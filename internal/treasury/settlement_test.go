package treasury_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/internal/treasury"
	"github.com/snektrials/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type settlerFixture struct {
	ctx        context.Context
	playerRepo repository.PlayerRepository
	txRepo     repository.RewardTransactionRepository
	oracle     *testutil.MockOracle
	executor   *testutil.MockExecutor
	notifier   *testutil.MockNotifier
	settler    *treasury.Settler
	now        time.Time
}

func newSettlerFixture(t *testing.T) *settlerFixture {
	f := &settlerFixture{
		ctx:        testutil.MockContext(),
		playerRepo: repository.NewPlayerRepository(),
		txRepo:     repository.NewRewardTransactionRepository(),
		oracle:     &testutil.MockOracle{},
		executor:   &testutil.MockExecutor{},
		notifier:   &testutil.MockNotifier{},
		now:        testutil.FixtureStartTime,
	}

	testutil.CreateFixtureContext(f.ctx)

	limiter := treasury.NewLimiter(5 * time.Second)
	limiter.Clock = func() time.Time { return f.now }

	f.settler = treasury.NewSettler(
		f.playerRepo, f.txRepo, f.oracle, limiter, f.executor, f.notifier)
	f.settler.Clock = func() time.Time { return f.now }
	return f
}

func (f *settlerFixture) player(t *testing.T, id string) *entity.Player {
	player, err := f.playerRepo.GetByID(f.ctx, id)
	require.NoError(t, err)
	return player
}

func Test_Settler_Settle(t *testing.T) {
	f := newSettlerFixture(t)

	receipt, err := f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		NativeFloor: 3_000_000,
	})
	require.NoError(t, err)
	require.Equal(t, "mocktxhash", receipt.TxHash)
	require.Equal(t, int64(100), receipt.Base)
	require.Equal(t, int64(100), receipt.Paid)

	// The weekly balance is cleared and the lock stamp set.
	player := f.player(t, "player1")
	require.Equal(t, int64(0), player.WeeklyTokens)
	require.Equal(t, int64(500), player.TotalTokens)
	require.True(t, player.WeeklyResetAt.Valid)
	require.Equal(t, f.now, player.WeeklyResetAt.Time.UTC())

	// The payout is recorded once.
	record, err := f.txRepo.GetByTxHash(f.ctx, "mocktxhash")
	require.NoError(t, err)
	require.Equal(t, "player1", record.PlayerID)
	require.Equal(t, int64(100), record.Amount)
}

func Test_Settler_Settle_WithMultiplier(t *testing.T) {
	f := newSettlerFixture(t)

	receipt, err := f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		Multiplier:  1.5,
		NativeFloor: 3_000_000,
	})
	require.NoError(t, err)
	require.Equal(t, int64(100), receipt.Base)
	require.Equal(t, int64(150), receipt.Paid)

	record, err := f.txRepo.GetByTxHash(f.ctx, "mocktxhash")
	require.NoError(t, err)
	require.Equal(t, int64(150), record.Amount)
}

func Test_Settler_Settle_NothingToClaim(t *testing.T) {
	f := newSettlerFixture(t)

	player := f.player(t, "player1")
	player.WeeklyTokens = 0

	_, err := f.settler.Settle(f.ctx, player, treasury.SettleOptions{})
	require.ErrorIs(t, err, treasury.ErrNothingToClaim)
}

func Test_Settler_Settle_ClaimLocked(t *testing.T) {
	f := newSettlerFixture(t)

	// A successful settlement locks the window.
	_, err := f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		NativeFloor: 3_000_000,
	})
	require.NoError(t, err)

	require.NoError(t, f.playerRepo.AddTokens(f.ctx, "player1", 30))

	// One millisecond before the window ends, still locked.
	f.now = f.now.Add(7*24*time.Hour - time.Millisecond)
	_, err = f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		NativeFloor: 3_000_000,
	})

	var lockErr treasury.ClaimLockedError
	require.ErrorAs(t, err, &lockErr)
	require.Equal(t, time.Millisecond, lockErr.Remaining)

	// At exactly the window boundary, the claim goes through.
	f.now = f.now.Add(time.Millisecond)
	f.executor.PayoutFunc = func(ctx context.Context, toAddress string, amount int64) (string, error) {
		return "secondtxhash", nil
	}

	receipt, err := f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		NativeFloor: 3_000_000,
	})
	require.NoError(t, err)
	require.Equal(t, int64(30), receipt.Paid)
}

func Test_Settler_Settle_SkipLockCheck(t *testing.T) {
	f := newSettlerFixture(t)

	_, err := f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		NativeFloor: 3_000_000,
	})
	require.NoError(t, err)

	require.NoError(t, f.playerRepo.AddTokens(f.ctx, "player1", 30))
	f.executor.PayoutFunc = func(ctx context.Context, toAddress string, amount int64) (string, error) {
		return "secondtxhash", nil
	}

	f.now = f.now.Add(10 * time.Second)
	_, err = f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		SkipLockCheck: true,
		NativeFloor:   3_000_000,
	})
	require.NoError(t, err)
}

func Test_Settler_Settle_ExceedsCap(t *testing.T) {
	f := newSettlerFixture(t)

	_, err := f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		Cap: 99,
	})
	require.ErrorIs(t, err, treasury.ErrAmountExceedsCap)

	// Equal to the cap is allowed.
	_, err = f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		Cap:         100,
		NativeFloor: 3_000_000,
	})
	require.NoError(t, err)
}

func Test_Settler_Settle_NoWallet(t *testing.T) {
	f := newSettlerFixture(t)

	_, err := f.settler.Settle(f.ctx, f.player(t, "player2"), treasury.SettleOptions{})
	require.ErrorIs(t, err, treasury.ErrInvalidAddress)
}

func Test_Settler_Settle_TreasuryInsufficient(t *testing.T) {
	f := newSettlerFixture(t)

	f.oracle.TreasuryBalanceFunc = func(ctx context.Context) (*treasury.Balance, error) {
		return &treasury.Balance{Native: 7_000_000, Tokens: 1_000_000}, nil
	}

	// With a 3 ada floor the requirement is exactly 7 ada and passes.
	_, err := f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		NativeFloor: 3_000_000,
	})
	require.NoError(t, err)

	// With a 7 ada floor the requirement is 11 ada and fails, the
	// operator is alerted, and the ledger is untouched.
	require.NoError(t, f.playerRepo.AddTokens(f.ctx, "player1", 30))

	var alerted int64
	f.notifier.AlertInsufficientFunc = func(ctx context.Context, balance *treasury.Balance, required int64) {
		alerted = required
	}

	_, err = f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		SkipLockCheck: true,
		NativeFloor:   7_000_000,
	})
	require.ErrorIs(t, err, treasury.ErrTreasuryInsufficient)
	require.Equal(t, int64(11_000_000), alerted)
	require.Equal(t, int64(30), f.player(t, "player1").WeeklyTokens)
}

func Test_Settler_Settle_TreasuryWorkedExample(t *testing.T) {
	f := newSettlerFixture(t)

	f.oracle.TreasuryBalanceFunc = func(ctx context.Context) (*treasury.Balance, error) {
		return &treasury.Balance{Native: 10_000_000, Tokens: 10}, nil
	}

	// 10 ada and 10 tokens against a 7 ada requirement: a 5 token
	// payout passes, an 11 token payout does not.
	player := f.player(t, "player1")
	player.WeeklyTokens = 5
	_, err := f.settler.Settle(f.ctx, player, treasury.SettleOptions{
		NativeFloor: 3_000_000,
	})
	require.NoError(t, err)

	player = f.player(t, "player1")
	player.WeeklyTokens = 11
	player.WeeklyResetAt = sql.NullTime{}
	f.now = f.now.Add(time.Minute)

	_, err = f.settler.Settle(f.ctx, player, treasury.SettleOptions{
		NativeFloor: 3_000_000,
	})
	require.ErrorIs(t, err, treasury.ErrTreasuryInsufficient)
}

func Test_Settler_Settle_TokensInsufficient(t *testing.T) {
	f := newSettlerFixture(t)

	f.oracle.TreasuryBalanceFunc = func(ctx context.Context) (*treasury.Balance, error) {
		return &treasury.Balance{Native: 100_000_000, Tokens: 99}, nil
	}

	alerted := false
	f.notifier.AlertInsufficientFunc = func(ctx context.Context, balance *treasury.Balance, required int64) {
		alerted = true
	}

	_, err := f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		NativeFloor: 3_000_000,
	})
	require.ErrorIs(t, err, treasury.ErrTreasuryInsufficient)
	require.True(t, alerted)
}

func Test_Settler_Settle_OracleUnavailable(t *testing.T) {
	f := newSettlerFixture(t)

	f.oracle.TreasuryBalanceFunc = func(ctx context.Context) (*treasury.Balance, error) {
		return nil, treasury.ErrOracleUnavailable
	}

	alerted := false
	f.notifier.AlertInsufficientFunc = func(ctx context.Context, balance *treasury.Balance, required int64) {
		alerted = true
	}

	_, err := f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{})
	require.ErrorIs(t, err, treasury.ErrOracleUnavailable)

	// An unreadable balance is not a low balance.
	require.False(t, alerted)
	require.Equal(t, int64(100), f.player(t, "player1").WeeklyTokens)
}

func Test_Settler_Settle_RateLimited(t *testing.T) {
	f := newSettlerFixture(t)

	_, err := f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		NativeFloor: 3_000_000,
	})
	require.NoError(t, err)

	// A second settlement inside the payout interval is refused before
	// any transfer is attempted.
	require.NoError(t, f.playerRepo.AddTokens(f.ctx, "player2", 10))
	require.NoError(t, f.playerRepo.UpdateWallet(f.ctx, "player2", "addr1player2wallet", f.now))

	executed := false
	f.executor.PayoutFunc = func(ctx context.Context, toAddress string, amount int64) (string, error) {
		executed = true
		return "secondtxhash", nil
	}

	_, err = f.settler.Settle(f.ctx, f.player(t, "player2"), treasury.SettleOptions{
		NativeFloor: 3_000_000,
	})
	require.ErrorIs(t, err, treasury.ErrRateLimited)
	require.False(t, executed)
	require.Equal(t, int64(50), f.player(t, "player2").WeeklyTokens)

	f.now = f.now.Add(5 * time.Second)
	_, err = f.settler.Settle(f.ctx, f.player(t, "player2"), treasury.SettleOptions{
		NativeFloor: 3_000_000,
	})
	require.NoError(t, err)
}

func Test_Settler_Settle_IdempotentAudit(t *testing.T) {
	f := newSettlerFixture(t)

	_, err := f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		NativeFloor: 3_000_000,
	})
	require.NoError(t, err)

	// Recording the same tx hash again is a silent no-op.
	err = f.txRepo.Create(f.ctx, &entity.RewardTransaction{
		Base:     entity.Base{ID: "duplicate"},
		TxHash:   "mocktxhash",
		PlayerID: "player1",
		Amount:   100,
	})
	require.NoError(t, err)

	record, err := f.txRepo.GetByTxHash(f.ctx, "mocktxhash")
	require.NoError(t, err)
	require.NotEqual(t, "duplicate", record.ID)
}

func Test_Settler_Settle_TransferFailed(t *testing.T) {
	f := newSettlerFixture(t)

	f.executor.PayoutFunc = func(ctx context.Context, toAddress string, amount int64) (string, error) {
		return "", treasury.ErrTransferFailed
	}

	_, err := f.settler.Settle(f.ctx, f.player(t, "player1"), treasury.SettleOptions{
		NativeFloor: 3_000_000,
	})
	require.ErrorIs(t, err, treasury.ErrTransferFailed)

	// A failed transfer never touches the ledger.
	player := f.player(t, "player1")
	require.Equal(t, int64(100), player.WeeklyTokens)
	require.False(t, player.WeeklyResetAt.Valid)

	_, err = f.txRepo.GetByTxHash(f.ctx, "mocktxhash")
	require.Error(t, err)
}
