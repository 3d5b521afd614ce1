package x402gate

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{"checksummed", "0x209693Bc6afc0C5328bA36FaF03C514EF312287C", false},
		{"lowercase", "0x209693bc6afc0c5328ba36faf03c514ef312287c", false},
		{"uppercase hex", "0x209693BC6AFC0C5328BA36FAF03C514EF312287C", false},
		{"empty", "", true},
		{"missing prefix", "209693Bc6afc0C5328bA36FaF03C514EF312287C00", true},
		{"too short", "0x1234", true},
		{"too long", "0x209693Bc6afc0C5328bA36FaF03C514EF312287C00", true},
		{"non-hex", "0xZZ9693Bc6afc0C5328bA36FaF03C514EF312287C", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.address)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateAddress(%q) expected error", tt.address)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateAddress(%q) unexpected error: %v", tt.address, err)
			}
			if tt.wantErr && err != nil && !errors.Is(err, ErrInvalidAddress) {
				t.Errorf("error = %v, want ErrInvalidAddress", err)
			}
		})
	}
}

func TestNormalizeAddressIdempotent(t *testing.T) {
	addr := "0x209693Bc6afc0C5328bA36FaF03C514EF312287C"
	once := NormalizeAddress(addr)
	if once != strings.ToLower(addr) {
		t.Errorf("NormalizeAddress = %q, want lowercase", once)
	}
	if NormalizeAddress(once) != once {
		t.Error("NormalizeAddress is not idempotent")
	}
}

func TestValidateFacilitatorURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://facilitator.example.com", false},
		{"http://localhost:8080", false},
		{"", true},
		{"ftp://facilitator.example.com", true},
		{"facilitator.example.com", true},
		{"https://facilitator.example.com/path with space", true},
	}

	for _, tt := range tests {
		err := ValidateFacilitatorURL(tt.url)
		if tt.wantErr && err == nil {
			t.Errorf("ValidateFacilitatorURL(%q) expected error", tt.url)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("ValidateFacilitatorURL(%q) unexpected error: %v", tt.url, err)
		}
	}
}

func TestSanitizeResourcePath(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		want     string
		wantErr  bool
	}{
		{"already rooted", "/api/data", "/api/data", false},
		{"missing slash", "api", "/api", false},
		{"trims whitespace", "  /api  ", "/api", false},
		{"traversal", "/api/../secret", "", true},
		{"bare traversal", "..", "", true},
		{"nul byte", "/api\x00/data", "", true},
		{"control character", "/api\x01", "", true},
		{"delete character", "/api\x7f", "", true},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"oversized", "/" + strings.Repeat("a", 2048), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeResourcePath(tt.resource)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SanitizeResourcePath(%q) expected error, got %q", tt.resource, got)
				}
				if !errors.Is(err, ErrInvalidResource) {
					t.Errorf("error = %v, want ErrInvalidResource", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SanitizeResourcePath(%q) unexpected error: %v", tt.resource, err)
			}
			if got != tt.want {
				t.Errorf("SanitizeResourcePath(%q) = %q, want %q", tt.resource, got, tt.want)
			}
		})
	}
}

func TestValidatePaymentHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{"valid base64", "eyJ4NDAyVmVyc2lvbiI6MX0=", false},
		{"empty", "", true},
		{"whitespace inside", "abc def", true},
		{"url-safe alphabet rejected", "ab-_cd", true},
		{"oversized", strings.Repeat("A", 64*1024+1), true},
		{"at limit", strings.Repeat("A", 64*1024), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaymentHeader(tt.header)
			if tt.wantErr && err == nil {
				t.Errorf("ValidatePaymentHeader expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidatePaymentHeader unexpected error: %v", err)
			}
			if tt.wantErr && err != nil && !errors.Is(err, ErrMalformedHeader) {
				t.Errorf("error = %v, want ErrMalformedHeader", err)
			}
		})
	}
}
