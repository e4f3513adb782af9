package blockfrost

import (
	"context"
	"fmt"
	"strings"

	"github.com/snektrials/backend/config"
	"github.com/snektrials/backend/pkg/api"
)

const (
	mainnetURL = "https://cardano-mainnet.blockfrost.io/api/v0"
	preprodURL = "https://cardano-preprod.blockfrost.io/api/v0"

	// LovelaceUnit is the unit blockfrost reports native ada under.
	LovelaceUnit = "lovelace"
)

// Amount is one asset held by an address. Unit is "lovelace" for the
// native currency, otherwise the policy id concatenated with the
// hex-encoded asset name.
type Amount struct {
	Unit     string
	Quantity int64
}

type IEndpoint interface {
	AddressAmounts(ctx context.Context, address string) ([]Amount, error)
}

type Endpoint struct {
	projectID    string
	baseURL      string
	apiGenerator api.Generator
}

func New(cfg config.CardanoConfigs) *Endpoint {
	baseURL := preprodURL
	if cfg.IsMainnet() {
		baseURL = mainnetURL
	}

	return &Endpoint{
		projectID:    cfg.BlockfrostAPIKey,
		baseURL:      baseURL,
		apiGenerator: api.NewGenerator(),
	}
}

func (e *Endpoint) AddressAmounts(ctx context.Context, address string) ([]Amount, error) {
	resp, err := e.apiGenerator.New(e.baseURL, "/addresses/%s", address).
		Header("project_id", e.projectID).
		GET(ctx)
	if err != nil {
		return nil, err
	}

	if resp.Code != 200 {
		return nil, fmt.Errorf("blockfrost returned status %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return nil, fmt.Errorf("invalid response for address %s", address)
	}

	objects, err := body.GetObjectArray("amount")
	if err != nil {
		return nil, err
	}

	amounts := make([]Amount, 0, len(objects))
	for _, obj := range objects {
		unit, err := obj.GetString("unit")
		if err != nil {
			return nil, err
		}

		quantity, err := obj.GetQuantity("quantity")
		if err != nil {
			return nil, err
		}

		amounts = append(amounts, Amount{Unit: unit, Quantity: quantity})
	}

	return amounts, nil
}

// CountByPolicy counts assets whose unit begins with policyID.
func CountByPolicy(amounts []Amount, policyID string) int {
	count := 0
	for _, a := range amounts {
		if a.Unit != LovelaceUnit && strings.HasPrefix(a.Unit, policyID) {
			count++
		}
	}

	return count
}
