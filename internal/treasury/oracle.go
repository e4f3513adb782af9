package treasury

import (
	"context"

	"github.com/snektrials/backend/pkg/api/blockfrost"
	"github.com/snektrials/backend/pkg/xcontext"
)

// Balance is a point-in-time snapshot of the treasury wallet.
type Balance struct {
	Native int64
	Tokens int64
}

// Oracle reads the treasury wallet state. It never caches; every call
// hits the chain indexer so settlement decisions see fresh funds.
type Oracle interface {
	TreasuryBalance(ctx context.Context) (*Balance, error)
}

type blockfrostOracle struct {
	endpoint blockfrost.IEndpoint
}

func NewBlockfrostOracle(endpoint blockfrost.IEndpoint) *blockfrostOracle {
	return &blockfrostOracle{endpoint: endpoint}
}

func (o *blockfrostOracle) TreasuryBalance(ctx context.Context) (*Balance, error) {
	cfg := xcontext.Configs(ctx).Treasury
	amounts, err := o.endpoint.AddressAmounts(ctx, cfg.Address)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot query treasury address: %v", err)
		return nil, ErrOracleUnavailable
	}

	balance := &Balance{}
	for _, amount := range amounts {
		switch amount.Unit {
		case blockfrost.LovelaceUnit:
			balance.Native += amount.Quantity
		case cfg.TokenUnit:
			balance.Tokens += amount.Quantity
		}
	}

	return balance, nil
}
