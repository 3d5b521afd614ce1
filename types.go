package x402gate

// PaymentRequirement represents a single payment option offered in a 402 response.
// Values are immutable after construction; BuildRequirements creates a fresh one
// per declined request.
type PaymentRequirement struct {
	// Scheme is the payment scheme identifier (always "exact" for this module).
	Scheme string `json:"scheme"`

	// Network is the blockchain network identifier (e.g., "base", "base-sepolia").
	Network string `json:"network"`

	// MaxAmountRequired is the payment amount in atomic units, as a base-10
	// integer string (e.g., "100" = 0.0001 USDC at 6 decimals).
	MaxAmountRequired string `json:"maxAmountRequired"`

	// Asset is the token contract address.
	Asset string `json:"asset"`

	// PayTo is the recipient address, normalized lowercase.
	PayTo string `json:"payTo"`

	// Resource is the path the payment unlocks access to.
	Resource string `json:"resource"`

	// Description is an optional human-readable payment description.
	Description string `json:"description"`

	// MaxTimeoutSeconds is the validity window of a payment authorization.
	// It is independent of the facilitator RPC timeout.
	MaxTimeoutSeconds int `json:"maxTimeoutSeconds"`

	// Extra carries token metadata (EIP-712 domain name and version).
	// Populated only when the network's default stablecoin is used.
	Extra map[string]any `json:"extra,omitempty"`
}

// PaymentRequirementsResponse is the 402 response body for API clients.
// The "accepts" field name is part of the wire contract.
type PaymentRequirementsResponse struct {
	// X402Version is the protocol version (currently 1).
	X402Version int `json:"x402Version"`

	// Error is a human-readable, client-safe error message.
	Error string `json:"error"`

	// Accepts is the list of payment options the server will accept.
	Accepts []PaymentRequirement `json:"accepts"`
}

// PaymentPayload is the decoded X-PAYMENT header. The Payload field is opaque
// to the gate: it is validated for envelope shape only and handed to the
// facilitator verbatim.
type PaymentPayload struct {
	// X402Version is the protocol version (currently 1).
	X402Version int `json:"x402Version"`

	// Scheme is the payment scheme identifier (e.g., "exact").
	Scheme string `json:"scheme"`

	// Network is the blockchain network identifier.
	Network string `json:"network"`

	// Payload contains the scheme-specific signed payment data.
	Payload any `json:"payload"`
}
