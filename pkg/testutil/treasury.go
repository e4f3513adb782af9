package testutil

import (
	"context"

	"github.com/snektrials/backend/internal/treasury"
)

type MockOracle struct {
	TreasuryBalanceFunc func(ctx context.Context) (*treasury.Balance, error)
}

func (m *MockOracle) TreasuryBalance(ctx context.Context) (*treasury.Balance, error) {
	if m.TreasuryBalanceFunc != nil {
		return m.TreasuryBalanceFunc(ctx)
	}

	return &treasury.Balance{Native: 100_000_000, Tokens: 1_000_000}, nil
}

type MockExecutor struct {
	PayoutFunc func(ctx context.Context, toAddress string, amount int64) (string, error)
}

func (m *MockExecutor) Payout(ctx context.Context, toAddress string, amount int64) (string, error) {
	if m.PayoutFunc != nil {
		return m.PayoutFunc(ctx, toAddress, amount)
	}

	return "mocktxhash", nil
}

type MockNotifier struct {
	AlertInsufficientFunc func(ctx context.Context, balance *treasury.Balance, required int64)
}

func (m *MockNotifier) AlertInsufficient(
	ctx context.Context, balance *treasury.Balance, required int64,
) {
	if m.AlertInsufficientFunc != nil {
		m.AlertInsufficientFunc(ctx, balance, required)
	}
}
