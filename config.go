package x402gate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FallbackMode controls gate behavior when the facilitator is unreachable,
// errors, or times out.
type FallbackMode int

const (
	// FallbackError fails closed: the gate answers 500 and the request never
	// reaches the protected handler.
	FallbackError FallbackMode = iota

	// FallbackPass fails open: the request is admitted as if the gate were
	// not installed.
	FallbackPass
)

// String implements fmt.Stringer.
func (m FallbackMode) String() string {
	if m == FallbackPass {
		return "pass"
	}
	return "error"
}

// ParseFallbackMode parses a fallback directive value. Accepted values are
// "error" (alias "500") and "pass" (aliases "bypass", "through"),
// case-insensitive. The empty string defaults to FallbackError.
func ParseFallbackMode(s string) (FallbackMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error", "500":
		return FallbackError, nil
	case "pass", "bypass", "through":
		return FallbackPass, nil
	default:
		return FallbackError, fmt.Errorf("%w: fallback must be 'error' or 'pass', got %q", ErrInvalidConfig, s)
	}
}

// Defaults applied by RouteConfig.Parse.
const (
	// DefaultAssetDecimals is the decimal count of the default stablecoin.
	DefaultAssetDecimals = 6

	// DefaultFacilitatorTimeout bounds each facilitator verify call.
	DefaultFacilitatorTimeout = 10 * time.Second

	// DefaultTTLSeconds is the default payment-authorization validity window.
	DefaultTTLSeconds = 60

	// maxAssetDecimals is the largest supported token precision.
	maxAssetDecimals = 28
)

// maxAmount caps configured amounts at 1 billion tokens.
var maxAmount = decimal.NewFromInt(1_000_000_000)

// RouteConfig is the per-route configuration surface the host integration
// layer fills in (from its config file, directives, or flags). Zero values
// mean "not set" and fall back to defaults during Parse.
type RouteConfig struct {
	// Enabled turns payment enforcement on for the route.
	Enabled bool

	// Amount is the payment amount in decimal token units (e.g., "0.0001").
	Amount string

	// PayTo is the recipient address.
	PayTo string

	// FacilitatorURL is the verification service endpoint.
	FacilitatorURL string

	// Description is an optional human-readable payment description.
	Description string

	// Network selects the blockchain network by name (e.g., "base-sepolia").
	Network string

	// NetworkID selects the network by EVM chain id. Takes precedence over
	// Network when both are set.
	NetworkID int64

	// Resource overrides the request path in payment requirements.
	Resource string

	// Asset overrides the network's default stablecoin contract address.
	Asset string

	// AssetDecimals is the token precision used to scale Amount into atomic
	// units. Defaults to 6.
	AssetDecimals int

	// TimeoutSeconds bounds each facilitator verify call (1-300, default 10).
	TimeoutSeconds int

	// TTLSeconds is the payment-authorization validity window (1-3600,
	// default 60). Serialized as maxTimeoutSeconds.
	TTLSeconds int

	// Fallback selects the facilitator-failure policy: "error" or "pass".
	Fallback string
}

// RouteSettings is the parsed, immutable form of a RouteConfig. It is built
// once per route at startup or reload and shared read-only across requests.
type RouteSettings struct {
	Enabled        bool
	Amount         decimal.Decimal
	HasAmount      bool
	PayTo          string
	FacilitatorURL string
	Description    string
	Network        string
	NetworkID      int64
	Resource       string
	Asset          string
	AssetDecimals  int
	Timeout        time.Duration
	TTLSeconds     int
	Fallback       FallbackMode
}

// Parse validates the configuration and resolves defaults. Errors carry
// operator-facing detail; they are surfaced at config-load time and never
// echoed to clients.
func (c RouteConfig) Parse() (*RouteSettings, error) {
	s := &RouteSettings{
		Enabled:        c.Enabled,
		PayTo:          c.PayTo,
		FacilitatorURL: c.FacilitatorURL,
		Description:    c.Description,
		Network:        c.Network,
		NetworkID:      c.NetworkID,
		Resource:       c.Resource,
		Asset:          c.Asset,
		AssetDecimals:  DefaultAssetDecimals,
		Timeout:        DefaultFacilitatorTimeout,
		TTLSeconds:     DefaultTTLSeconds,
	}

	if c.AssetDecimals != 0 {
		if c.AssetDecimals < 0 || c.AssetDecimals > maxAssetDecimals {
			return nil, fmt.Errorf("%w: asset decimals must be between 0 and %d, got %d",
				ErrInvalidConfig, maxAssetDecimals, c.AssetDecimals)
		}
		s.AssetDecimals = c.AssetDecimals
	}

	if c.Amount != "" {
		amount, err := decimal.NewFromString(c.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a decimal amount", ErrInvalidAmount, c.Amount)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount cannot be negative", ErrInvalidAmount)
		}
		if amount.GreaterThan(maxAmount) {
			return nil, fmt.Errorf("%w: amount exceeds maximum of %s", ErrInvalidAmount, maxAmount)
		}
		if scale := decimalScale(amount); scale > s.AssetDecimals {
			return nil, fmt.Errorf("%w: too many decimal places for token precision: maximum is %d, got %d",
				ErrInvalidAmount, s.AssetDecimals, scale)
		}
		s.Amount = amount
		s.HasAmount = true
	}

	if c.PayTo != "" {
		if err := ValidateAddress(c.PayTo); err != nil {
			return nil, fmt.Errorf("pay-to: %w", err)
		}
		s.PayTo = NormalizeAddress(c.PayTo)
	}

	if c.FacilitatorURL != "" {
		if err := ValidateFacilitatorURL(c.FacilitatorURL); err != nil {
			return nil, err
		}
	}

	if c.Network != "" {
		if _, err := NetworkByName(c.Network); err != nil {
			return nil, err
		}
	}
	if c.NetworkID != 0 {
		if _, err := NetworkByChainID(c.NetworkID); err != nil {
			return nil, err
		}
	}

	if c.Asset != "" {
		if err := ValidateAddress(c.Asset); err != nil {
			return nil, fmt.Errorf("asset: %w", err)
		}
		s.Asset = NormalizeAddress(c.Asset)
	}

	if c.Resource != "" {
		sanitized, err := SanitizeResourcePath(c.Resource)
		if err != nil {
			return nil, err
		}
		s.Resource = sanitized
	}

	if c.TimeoutSeconds != 0 {
		if c.TimeoutSeconds < 1 || c.TimeoutSeconds > 300 {
			return nil, fmt.Errorf("%w: timeout must be between 1 and 300 seconds, got %d",
				ErrInvalidConfig, c.TimeoutSeconds)
		}
		s.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
	}

	if c.TTLSeconds != 0 {
		if c.TTLSeconds < 1 || c.TTLSeconds > 3600 {
			return nil, fmt.Errorf("%w: ttl must be between 1 and 3600 seconds, got %d",
				ErrInvalidConfig, c.TTLSeconds)
		}
		s.TTLSeconds = c.TTLSeconds
	}

	fallback, err := ParseFallbackMode(c.Fallback)
	if err != nil {
		return nil, err
	}
	s.Fallback = fallback

	return s, nil
}

// decimalScale returns the number of digits after the decimal point as the
// amount was written, matching how token precision is enforced ("0.0100" has
// scale 4 even though it normalizes to scale 2).
func decimalScale(d decimal.Decimal) int {
	if d.Exponent() >= 0 {
		return 0
	}
	return int(-d.Exponent())
}
