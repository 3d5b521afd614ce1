// Package encoding provides the base64+JSON codec for x402 payment data as it
// travels in the X-PAYMENT header.
package encoding

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	x402gate "github.com/mark3labs/x402-gate"
)

// EncodePayment converts a PaymentPayload to a base64-encoded JSON string
// suitable for an X-PAYMENT header.
//
// Returns an error if JSON marshaling fails.
func EncodePayment(payment x402gate.PaymentPayload) (string, error) {
	paymentJSON, err := json.Marshal(payment)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payment: %w", err)
	}
	return base64.StdEncoding.EncodeToString(paymentJSON), nil
}

// DecodePayment converts a base64-encoded JSON string to a PaymentPayload.
//
// Decode failures wrap x402gate.ErrMalformedHeader so callers can classify
// them as invalid-payment without inspecting the message.
func DecodePayment(encoded string) (x402gate.PaymentPayload, error) {
	var payment x402gate.PaymentPayload

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return payment, fmt.Errorf("%w: %v", x402gate.ErrMalformedHeader, err)
	}

	if err := json.Unmarshal(decoded, &payment); err != nil {
		return payment, fmt.Errorf("%w: %v", x402gate.ErrMalformedHeader, err)
	}

	return payment, nil
}
