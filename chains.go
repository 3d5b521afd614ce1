// Package x402gate implements server-side enforcement of the x402 pay-per-request
// protocol: route configuration, payment-requirements construction, and the shared
// validation helpers used by the HTTP gate in the http subpackage.
package x402gate

import (
	"fmt"
	"sort"
)

// ChainConfig contains chain-specific configuration for the default stablecoin
// and payment requirements. All USDC addresses and EIP-712 domain parameters
// were verified on 2025-10-28.
type ChainConfig struct {
	// Network is the x402 protocol network identifier (e.g., "base").
	Network string

	// ChainID is the EVM chain id (e.g., 8453 for Base mainnet).
	ChainID int64

	// USDCAddress is the official Circle USDC contract address.
	USDCAddress string

	// Decimals is the number of decimal places for USDC (always 6).
	Decimals uint8

	// EIP712Name is the EIP-712 domain parameter "name".
	EIP712Name string

	// EIP712Version is the EIP-712 domain parameter "version".
	EIP712Version string

	// Testnet reports whether the chain is a test network.
	Testnet bool
}

// DefaultNetwork is used when a route configures neither a network name nor a
// chain id.
const DefaultNetwork = "base"

// Mainnet chain configurations.
var (
	// BaseMainnet is the configuration for Base mainnet.
	BaseMainnet = ChainConfig{
		Network:       "base",
		ChainID:       8453,
		USDCAddress:   "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
		Decimals:      6,
		EIP712Name:    "USD Coin",
		EIP712Version: "2",
	}

	// PolygonMainnet is the configuration for Polygon PoS mainnet.
	PolygonMainnet = ChainConfig{
		Network:       "polygon",
		ChainID:       137,
		USDCAddress:   "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359",
		Decimals:      6,
		EIP712Name:    "USD Coin",
		EIP712Version: "2",
	}

	// AvalancheMainnet is the configuration for Avalanche C-Chain mainnet.
	AvalancheMainnet = ChainConfig{
		Network:       "avalanche",
		ChainID:       43114,
		USDCAddress:   "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E",
		Decimals:      6,
		EIP712Name:    "USD Coin",
		EIP712Version: "2",
	}
)

// Testnet chain configurations.
var (
	// BaseSepolia is the configuration for Base Sepolia testnet.
	BaseSepolia = ChainConfig{
		Network:       "base-sepolia",
		ChainID:       84532,
		USDCAddress:   "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
		Decimals:      6,
		EIP712Name:    "USDC",
		EIP712Version: "2",
		Testnet:       true,
	}

	// PolygonAmoy is the configuration for Polygon Amoy testnet.
	PolygonAmoy = ChainConfig{
		Network:       "polygon-amoy",
		ChainID:       80002,
		USDCAddress:   "0x41E94Eb019C0762f9Bfcf9Fb1E58725BfB0e7582",
		Decimals:      6,
		EIP712Name:    "USDC",
		EIP712Version: "2",
		Testnet:       true,
	}

	// AvalancheFuji is the configuration for Avalanche Fuji testnet.
	AvalancheFuji = ChainConfig{
		Network:       "avalanche-fuji",
		ChainID:       43113,
		USDCAddress:   "0x5425890298aed601595a70AB815c96711a31Bc65",
		Decimals:      6,
		EIP712Name:    "USD Coin",
		EIP712Version: "2",
		Testnet:       true,
	}
)

var chainsByName = map[string]ChainConfig{
	BaseMainnet.Network:      BaseMainnet,
	BaseSepolia.Network:      BaseSepolia,
	PolygonMainnet.Network:   PolygonMainnet,
	PolygonAmoy.Network:      PolygonAmoy,
	AvalancheMainnet.Network: AvalancheMainnet,
	AvalancheFuji.Network:    AvalancheFuji,
}

var chainsByID = map[int64]ChainConfig{
	BaseMainnet.ChainID:      BaseMainnet,
	BaseSepolia.ChainID:      BaseSepolia,
	PolygonMainnet.ChainID:   PolygonMainnet,
	PolygonAmoy.ChainID:      PolygonAmoy,
	AvalancheMainnet.ChainID: AvalancheMainnet,
	AvalancheFuji.ChainID:    AvalancheFuji,
}

// NetworkByName returns the chain configuration for a network identifier.
func NetworkByName(network string) (ChainConfig, error) {
	if network == "" {
		return ChainConfig{}, fmt.Errorf("%w: network name cannot be empty", ErrUnsupportedNetwork)
	}
	chain, ok := chainsByName[network]
	if !ok {
		return ChainConfig{}, fmt.Errorf("%w: %s (supported: %v)", ErrUnsupportedNetwork, network, SupportedNetworks())
	}
	return chain, nil
}

// NetworkByChainID returns the chain configuration for an EVM chain id.
// Chain ids take precedence over network names when a route sets both.
func NetworkByChainID(chainID int64) (ChainConfig, error) {
	chain, ok := chainsByID[chainID]
	if !ok {
		return ChainConfig{}, fmt.Errorf("%w: chain id %d", ErrUnsupportedNetwork, chainID)
	}
	return chain, nil
}

// IsSupportedNetwork reports whether the network identifier is known.
func IsSupportedNetwork(network string) bool {
	_, ok := chainsByName[network]
	return ok
}

// SupportedNetworks returns the sorted list of supported network identifiers.
func SupportedNetworks() []string {
	names := make([]string, 0, len(chainsByName))
	for name := range chainsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
