package testutil

import (
	"context"

	"github.com/snektrials/backend/pkg/api/blockfrost"
)

type MockBlockfrostEndpoint struct {
	AddressAmountsFunc func(ctx context.Context, address string) ([]blockfrost.Amount, error)
}

func (m *MockBlockfrostEndpoint) AddressAmounts(
	ctx context.Context, address string,
) ([]blockfrost.Amount, error) {
	if m.AddressAmountsFunc != nil {
		return m.AddressAmountsFunc(ctx, address)
	}

	return nil, nil
}

type MockDiscordEndpoint struct {
	SendDirectMessageFunc func(ctx context.Context, userID, content string) error
}

func (m *MockDiscordEndpoint) SendDirectMessage(ctx context.Context, userID, content string) error {
	if m.SendDirectMessageFunc != nil {
		return m.SendDirectMessageFunc(ctx, userID, content)
	}

	return nil
}
