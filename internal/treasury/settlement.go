package treasury

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/pkg/dateutil"
	"github.com/snektrials/backend/pkg/xcontext"
)

// SettleOptions tunes one settlement run.
type SettleOptions struct {
	// SkipLockCheck bypasses the weekly claim window. Only privileged
	// operator flows set this.
	SkipLockCheck bool

	// Cap rejects any pending balance above it. Zero means uncapped.
	Cap int64

	// Multiplier is the event multiplier applied to the pending
	// balance. Values that are not positive finite numbers leave the
	// amount unscaled.
	Multiplier float64

	// NativeFloor is the minimum native balance the treasury must
	// retain beyond the payout output and fee buffer.
	NativeFloor int64
}

// Receipt describes one confirmed settlement.
type Receipt struct {
	TxHash string
	Base   int64
	Paid   int64
}

// Settler drains a player's accrued weekly balance to their wallet.
//
// All checks run before the transfer is submitted, and the ledger is
// only touched after the node accepts the transaction. Any failure up
// to and including submission leaves the player's balance exactly as
// it was, so a failed claim can simply be retried.
type Settler struct {
	playerRepo repository.PlayerRepository
	txRepo     repository.RewardTransactionRepository
	oracle     Oracle
	limiter    *Limiter
	executor   Executor
	notifier   Notifier

	// Clock is swappable in tests. Defaults to time.Now.
	Clock func() time.Time
}

func NewSettler(
	playerRepo repository.PlayerRepository,
	txRepo repository.RewardTransactionRepository,
	oracle Oracle,
	limiter *Limiter,
	executor Executor,
	notifier Notifier,
) *Settler {
	return &Settler{
		playerRepo: playerRepo,
		txRepo:     txRepo,
		oracle:     oracle,
		limiter:    limiter,
		executor:   executor,
		notifier:   notifier,
		Clock:      time.Now,
	}
}

func (s *Settler) Settle(
	ctx context.Context, player *entity.Player, opts SettleOptions,
) (*Receipt, error) {
	cfg := xcontext.Configs(ctx).Treasury
	now := s.Clock()

	if !opts.SkipLockCheck && player.WeeklyResetAt.Valid {
		remaining := dateutil.Remaining(player.WeeklyResetAt.Time, cfg.ClaimLockWindow, now)
		if remaining > 0 {
			return nil, ClaimLockedError{Remaining: remaining}
		}
	}

	base := player.WeeklyTokens
	if base <= 0 {
		return nil, ErrNothingToClaim
	}

	if opts.Cap > 0 && base > opts.Cap {
		return nil, ErrAmountExceedsCap
	}

	if !player.WalletAddress.Valid {
		return nil, ErrInvalidAddress
	}

	paid := Scale(base, opts.Multiplier)

	balance, err := s.oracle.TreasuryBalance(ctx)
	if err != nil {
		return nil, err
	}

	required := opts.NativeFloor + cfg.MinOutputFloor + cfg.FeeBuffer
	if balance.Native < required || balance.Tokens < ToRaw(paid, cfg.TokenDecimals) {
		s.notifier.AlertInsufficient(ctx, balance, required)
		return nil, ErrTreasuryInsufficient
	}

	if wait, ok := s.limiter.Reserve(); !ok {
		xcontext.Logger(ctx).Debugf(
			"Payout for player %s deferred for %s by rate limit", player.ID, wait)
		return nil, ErrRateLimited
	}

	txHash, err := s.executor.Payout(ctx, player.WalletAddress.String, paid)
	if err != nil {
		return nil, err
	}

	// The transfer is on chain from here. The balance clear and the
	// audit append commit together; if the commit fails the tx hash is
	// logged so the operator can reconcile against the chain.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := s.playerRepo.ClearWeekly(ctx, player.ID, now); err != nil {
		xcontext.Logger(ctx).Errorf(
			"Paid player %s with tx %s but cannot clear balance: %v", player.ID, txHash, err)
		return nil, err
	}

	err = s.txRepo.Create(ctx, &entity.RewardTransaction{
		Base:     entity.Base{ID: uuid.NewString()},
		TxHash:   txHash,
		PlayerID: player.ID,
		Amount:   paid,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf(
			"Paid player %s with tx %s but cannot record it: %v", player.ID, txHash, err)
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &Receipt{TxHash: txHash, Base: base, Paid: paid}, nil
}
