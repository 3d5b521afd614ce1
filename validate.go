package x402gate

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// maxResourcePathLength caps sanitized resource paths.
	maxResourcePathLength = 2048

	// maxPaymentHeaderSize caps the X-PAYMENT header (64KB).
	maxPaymentHeaderSize = 64 * 1024
)

// ValidateAddress checks that an address is a well-formed 20-byte hex address
// (0x prefix plus 40 hex digits).
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("%w: address cannot be empty", ErrInvalidAddress)
	}
	if len(address) != 42 {
		return fmt.Errorf("%w: expected 42 characters, got %d", ErrInvalidAddress, len(address))
	}
	if !common.IsHexAddress(address) {
		return fmt.Errorf("%w: %s is not a 0x-prefixed hex address", ErrInvalidAddress, address)
	}
	return nil
}

// NormalizeAddress lowercases a valid hex address. Addresses are compared and
// serialized case-insensitively, so the normalized form is canonical.
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}

// ValidateFacilitatorURL checks facilitator endpoint URLs. Only the scheme and
// basic shape are validated here; reachability is a runtime concern.
func ValidateFacilitatorURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("%w: facilitator URL cannot be empty", ErrInvalidConfig)
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return fmt.Errorf("%w: facilitator URL must start with http:// or https://", ErrInvalidConfig)
	}
	if strings.ContainsAny(rawURL, " \t\r\n") {
		return fmt.Errorf("%w: facilitator URL contains whitespace", ErrInvalidConfig)
	}
	return nil
}

// SanitizeResourcePath validates and normalizes a resource path.
//
// It rejects path-traversal sequences, NUL and control bytes, and oversized
// paths, then trims surrounding whitespace and guarantees a leading "/".
func SanitizeResourcePath(resource string) (string, error) {
	if strings.TrimSpace(resource) == "" {
		return "", fmt.Errorf("%w: resource path cannot be empty", ErrInvalidResource)
	}
	if strings.Contains(resource, "..") {
		return "", fmt.Errorf("%w: resource path contains traversal sequence", ErrInvalidResource)
	}
	if strings.ContainsRune(resource, '\x00') {
		return "", fmt.Errorf("%w: resource path contains NUL byte", ErrInvalidResource)
	}
	if len(resource) > maxResourcePathLength {
		return "", fmt.Errorf("%w: resource path exceeds %d bytes", ErrInvalidResource, maxResourcePathLength)
	}
	for _, c := range resource {
		if c < 0x20 && c != '\n' && c != '\r' && c != '\t' {
			return "", fmt.Errorf("%w: resource path contains control character", ErrInvalidResource)
		}
		if c == 0x7f {
			return "", fmt.Errorf("%w: resource path contains control character", ErrInvalidResource)
		}
	}

	normalized := strings.TrimSpace(resource)
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return normalized, nil
}

// ValidatePaymentHeader checks an X-PAYMENT header before any decoding: it must
// be non-empty, at most 64KB, and contain only Base64 alphabet characters.
// Structural validation happens later in the encoding package.
func ValidatePaymentHeader(paymentB64 string) error {
	if paymentB64 == "" {
		return fmt.Errorf("%w: X-PAYMENT header cannot be empty", ErrMalformedHeader)
	}
	if len(paymentB64) > maxPaymentHeaderSize {
		return fmt.Errorf("%w: X-PAYMENT header exceeds %d bytes", ErrMalformedHeader, maxPaymentHeaderSize)
	}
	for i := 0; i < len(paymentB64); i++ {
		c := paymentB64[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '+' || c == '/' || c == '=':
		default:
			return fmt.Errorf("%w: X-PAYMENT header contains non-Base64 character", ErrMalformedHeader)
		}
	}
	return nil
}
