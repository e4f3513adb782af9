package treasury

import (
	"context"
	"math"
	"strings"

	"github.com/snektrials/backend/pkg/blockchain/cardano"
	"github.com/snektrials/backend/pkg/xcontext"
)

// Executor submits a single signed payout transaction and returns its
// hash. Submission is fire-and-confirm: a returned hash means the node
// accepted the transaction.
type Executor interface {
	Payout(ctx context.Context, toAddress string, amount int64) (string, error)
}

type cardanoExecutor struct {
	client *cardano.Client
}

func NewCardanoExecutor(client *cardano.Client) *cardanoExecutor {
	return &cardanoExecutor{client: client}
}

func (e *cardanoExecutor) Payout(ctx context.Context, toAddress string, amount int64) (string, error) {
	cfg := xcontext.Configs(ctx).Treasury
	if !strings.HasPrefix(toAddress, "addr") {
		return "", ErrInvalidAddress
	}

	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	txHash, err := e.client.TransferToken(
		ctx,
		toAddress,
		cfg.MinOutputFloor,
		cfg.TokenUnit,
		ToRaw(amount, cfg.TokenDecimals),
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot submit payout transaction: %v", err)
		return "", ErrTransferFailed
	}

	return txHash, nil
}

// Scale applies an event multiplier, rounding down. A multiplier that
// is not a positive finite number, or that rounds a positive amount to
// zero, falls back to the unscaled amount.
func Scale(amount int64, multiplier float64) int64 {
	if multiplier <= 0 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return amount
	}

	scaled := int64(math.Floor(float64(amount) * multiplier))
	if scaled <= 0 {
		return amount
	}

	return scaled
}

// ToRaw converts a human-readable amount to on-chain base units.
func ToRaw(amount int64, decimals int) int64 {
	raw := amount
	for i := 0; i < decimals; i++ {
		raw *= 10
	}

	return raw
}
