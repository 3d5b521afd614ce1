package x402gate

import (
	"fmt"
)

// BuildRequirements turns parsed route settings and the request path into a
// fresh PaymentRequirement. It is called once per declined or verified request
// and the result is never mutated afterwards.
//
// Network resolution gives chain ids precedence over network names; with
// neither set the default mainnet is used. The asset override is used verbatim
// when present, otherwise the network's default stablecoin, and EIP-712 token
// metadata is attached only in the default-stablecoin case.
func BuildRequirements(s *RouteSettings, requestPath string) (PaymentRequirement, error) {
	if !s.HasAmount {
		return PaymentRequirement{}, fmt.Errorf("%w: amount not configured", ErrInvalidConfig)
	}
	if s.Amount.IsNegative() {
		return PaymentRequirement{}, fmt.Errorf("%w: amount cannot be negative", ErrInvalidAmount)
	}
	if s.PayTo == "" {
		return PaymentRequirement{}, fmt.Errorf("%w: pay-to address not configured", ErrInvalidConfig)
	}

	var chain ChainConfig
	var err error
	switch {
	case s.NetworkID != 0:
		chain, err = NetworkByChainID(s.NetworkID)
	case s.Network != "":
		chain, err = NetworkByName(s.Network)
	default:
		chain, err = NetworkByName(DefaultNetwork)
	}
	if err != nil {
		return PaymentRequirement{}, err
	}

	asset := s.Asset
	if asset == "" {
		asset = chain.USDCAddress
	}

	decimals := s.AssetDecimals
	if scale := decimalScale(s.Amount); scale > decimals {
		return PaymentRequirement{}, fmt.Errorf(
			"%w: too many decimal places for token precision: maximum is %d, got %d",
			ErrInvalidAmount, decimals, scale)
	}

	resource := s.Resource
	if resource == "" {
		resource, err = SanitizeResourcePath(requestPath)
		if err != nil {
			return PaymentRequirement{}, err
		}
	}

	req := PaymentRequirement{
		Scheme:            "exact",
		Network:           chain.Network,
		MaxAmountRequired: s.Amount.Shift(int32(decimals)).String(),
		Asset:             asset,
		PayTo:             NormalizeAddress(s.PayTo),
		Resource:          resource,
		Description:       s.Description,
		MaxTimeoutSeconds: s.TTLSeconds,
	}

	// Token metadata applies to the default stablecoin only; custom assets
	// carry no EIP-712 domain the gate could know about.
	if s.Asset == "" {
		req.Extra = map[string]any{
			"name":    chain.EIP712Name,
			"version": chain.EIP712Version,
		}
	}

	return req, nil
}
