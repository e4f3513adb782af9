package cardano

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/echovl/cardano-go"
	"github.com/echovl/cardano-go/blockfrost"
	"github.com/echovl/cardano-go/wallet"
	"github.com/snektrials/backend/config"
)

const treasuryWalletName = "treasury"

// Client holds the treasury wallet and the node connection used to
// build, sign, and submit reward transfers.
type Client struct {
	node    cardano.Node
	wallet  *wallet.Wallet
	network cardano.Network
}

func NewClient(cfg config.CardanoConfigs, treasury config.TreasuryConfigs) (*Client, error) {
	if strings.TrimSpace(treasury.Mnemonic) == "" {
		return nil, fmt.Errorf("treasury mnemonic is not configured")
	}

	network := cardano.Preprod
	if cfg.IsMainnet() {
		network = cardano.Mainnet
	}

	node := blockfrost.NewNode(network, cfg.BlockfrostAPIKey)

	client := wallet.NewClient(&wallet.Options{Node: node})
	w, err := client.RestoreWallet(
		treasuryWalletName, "", strings.TrimSpace(treasury.Mnemonic))
	if err != nil {
		return nil, fmt.Errorf("cannot restore treasury wallet: %w", err)
	}

	// The wallet client propagates the node's network to restored
	// wallets, so the wallet is already bound to `network` here.
	return &Client{node: node, wallet: w, network: network}, nil
}

// TransferToken sends quantity of the asset identified by unit to
// toAddr, with lovelace attached to satisfy the min-UTxO rule. It
// returns the transaction hash accepted by the network; no
// confirmation is awaited.
func (c *Client) TransferToken(
	_ context.Context, toAddr string, lovelace int64, unit string, quantity int64,
) (string, error) {
	receiver, err := cardano.NewAddress(toAddr)
	if err != nil {
		return "", fmt.Errorf("invalid receiver address: %w", err)
	}

	value, err := assetValue(lovelace, unit, quantity)
	if err != nil {
		return "", err
	}

	txHash, err := c.wallet.Transfer(receiver, value)
	if err != nil {
		return "", fmt.Errorf("cannot submit transfer: %w", err)
	}

	return txHash.String(), nil
}

// assetValue builds a multi-asset value from a unit string, which is
// the 28-byte policy id in hex followed by the hex-encoded asset name.
func assetValue(lovelace int64, unit string, quantity int64) (*cardano.Value, error) {
	const policyHexLen = 56

	if len(unit) < policyHexLen {
		return nil, fmt.Errorf("invalid asset unit %q", unit)
	}

	policyHash, err := cardano.NewHash28(unit[:policyHexLen])
	if err != nil {
		return nil, fmt.Errorf("invalid policy id in unit %q: %w", unit, err)
	}

	nameBytes, err := hex.DecodeString(unit[policyHexLen:])
	if err != nil {
		return nil, fmt.Errorf("invalid asset name in unit %q: %w", unit, err)
	}

	assets := cardano.NewAssets().
		Set(cardano.NewAssetName(string(nameBytes)), cardano.BigNum(quantity))
	multiAsset := cardano.NewMultiAsset().
		Set(cardano.NewPolicyIDFromHash(policyHash), assets)

	return cardano.NewValueWithAssets(cardano.Coin(lovelace), multiAsset), nil
}
