// Package validation provides operator-facing checks for payment requirements
// and payloads. It is used by integration layers that accept requirements
// from external configuration rather than building them from a RouteConfig.
package validation

import (
	"fmt"
	"math/big"

	x402gate "github.com/mark3labs/x402-gate"
)

// ValidateAmount validates that an atomic amount string is a positive
// base-10 integer. Atomic amounts never carry a decimal point.
func ValidateAmount(amount string) error {
	if amount == "" {
		return fmt.Errorf("amount cannot be empty")
	}

	// big.Int handles amounts beyond uint64 range (high-precision tokens).
	amt, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return fmt.Errorf("invalid amount format: %s", amount)
	}

	if amt.Sign() <= 0 {
		return fmt.Errorf("amount must be greater than 0, got: %s", amount)
	}

	return nil
}

// ValidatePaymentRequirement performs comprehensive validation of a payment
// requirement. It validates the amount, network, addresses, scheme, and
// timeout fields.
func ValidatePaymentRequirement(req x402gate.PaymentRequirement) error {
	if err := ValidateAmount(req.MaxAmountRequired); err != nil {
		return fmt.Errorf("invalid requirement: %w", err)
	}

	if req.Network == "" {
		return fmt.Errorf("invalid requirement: network cannot be empty")
	}
	if !x402gate.IsSupportedNetwork(req.Network) {
		return fmt.Errorf("invalid requirement: %w: %s", x402gate.ErrUnsupportedNetwork, req.Network)
	}

	if err := x402gate.ValidateAddress(req.PayTo); err != nil {
		return fmt.Errorf("invalid requirement: payTo: %w", err)
	}

	if req.Asset == "" {
		return fmt.Errorf("invalid requirement: asset address cannot be empty")
	}
	if err := x402gate.ValidateAddress(req.Asset); err != nil {
		return fmt.Errorf("invalid requirement: asset: %w", err)
	}

	switch req.Scheme {
	case "exact":
	case "":
		return fmt.Errorf("invalid requirement: scheme cannot be empty")
	default:
		return fmt.Errorf("invalid requirement: unsupported scheme %s", req.Scheme)
	}

	if req.MaxTimeoutSeconds < 0 {
		return fmt.Errorf("invalid requirement: timeout cannot be negative: %d", req.MaxTimeoutSeconds)
	}

	// Extra carries the EIP-712 signing domain when present; blank values
	// would make every signature fail verification.
	if req.Extra != nil {
		if name, ok := req.Extra["name"].(string); ok && name == "" {
			return fmt.Errorf("invalid requirement: EIP-712 domain name cannot be empty")
		}
		if version, ok := req.Extra["version"].(string); ok && version == "" {
			return fmt.Errorf("invalid requirement: EIP-712 domain version cannot be empty")
		}
	}

	return nil
}

// ValidateRouteConfig checks a route configuration without retaining the
// parsed result. Useful for config linting ahead of gate construction.
func ValidateRouteConfig(cfg x402gate.RouteConfig) error {
	_, err := cfg.Parse()
	return err
}

// ValidatePaymentPayload validates a decoded payment payload envelope.
// The scheme-specific inner payload is opaque here; the facilitator is the
// authority on its contents.
func ValidatePaymentPayload(payment x402gate.PaymentPayload) error {
	if payment.X402Version != 1 {
		return fmt.Errorf("unsupported x402 version: %d", payment.X402Version)
	}

	if payment.Scheme == "" {
		return fmt.Errorf("scheme cannot be empty")
	}

	if payment.Network == "" {
		return fmt.Errorf("network cannot be empty")
	}

	if payment.Payload == nil {
		return fmt.Errorf("payload cannot be nil")
	}

	return nil
}
