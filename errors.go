package x402gate

import "errors"

// Standard error definitions. These carry developer-facing detail through
// wrapping; only the Msg* constants below ever reach a client.

var (
	// ErrInvalidAmount indicates a malformed or out-of-range payment amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidAddress indicates a malformed recipient or asset address.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrUnsupportedNetwork indicates an unknown blockchain network or chain id.
	ErrUnsupportedNetwork = errors.New("unsupported network")

	// ErrInvalidResource indicates a resource path that failed sanitization.
	ErrInvalidResource = errors.New("invalid resource path")

	// ErrMalformedHeader indicates an X-PAYMENT header that is oversized,
	// not Base64, or otherwise undecodable.
	ErrMalformedHeader = errors.New("malformed payment header")

	// ErrInvalidPayment indicates a decoded payment that fails envelope checks.
	ErrInvalidPayment = errors.New("invalid payment")

	// ErrVerificationFailed indicates the facilitator explicitly rejected the payment.
	ErrVerificationFailed = errors.New("verification failed")

	// ErrFacilitatorUnavailable indicates a transport failure or non-2xx
	// facilitator response. Governed by the route's fallback policy.
	ErrFacilitatorUnavailable = errors.New("facilitator unavailable")

	// ErrTimeout indicates the facilitator call exceeded the route's timeout.
	ErrTimeout = errors.New("operation timed out")

	// ErrInvalidConfig indicates a route configuration that failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Client-safe messages. These are the only strings that cross the response
// boundary; raw error text, facilitator bodies, and addresses never do.
const (
	// MsgPaymentRequired is sent when no X-PAYMENT header is present.
	MsgPaymentRequired = "Payment required"

	// MsgInvalidPayment is sent when the header fails size, charset, or
	// decoding checks.
	MsgInvalidPayment = "Invalid payment"

	// MsgVerificationFailed is sent when the facilitator says the payment
	// is not valid.
	MsgVerificationFailed = "Payment verification failed"

	// MsgConfigurationError is sent when the route configuration cannot
	// produce payment requirements.
	MsgConfigurationError = "Configuration error"

	// MsgTimeout is logged when the facilitator call times out. It is never
	// sent to clients directly; the fallback policy decides the response.
	MsgTimeout = "Request timeout"
)
