// Package facilitator defines the contract between the payment gate and the
// external verification service.
package facilitator

import (
	"context"

	x402gate "github.com/mark3labs/x402-gate"
)

// Interface is the facilitator contract the gate depends on. The HTTP client
// in the http package is the production implementation; tests substitute
// counting or failing fakes.
type Interface interface {
	// Verify checks a payment authorization against the requirements without
	// executing any transaction. One call per request, never retried.
	Verify(ctx context.Context, payment x402gate.PaymentPayload, requirement x402gate.PaymentRequirement) (*VerifyResponse, error)
}

// VerifyResponse is the facilitator's verification outcome. It is neither
// retried nor cached.
type VerifyResponse struct {
	// IsValid reports whether the payment satisfies the requirements.
	IsValid bool `json:"isValid"`

	// InvalidReason carries the facilitator's rejection reason, if any.
	InvalidReason string `json:"invalidReason,omitempty"`

	// Payer is the address that signed the payment, when known.
	Payer string `json:"payer,omitempty"`
}
