package encoding

import (
	"encoding/base64"
	"errors"
	"testing"

	x402gate "github.com/mark3labs/x402-gate"
)

func TestEncodeDecodePayment(t *testing.T) {
	payment := x402gate.PaymentPayload{
		X402Version: 1,
		Scheme:      "exact",
		Network:     "base-sepolia",
		Payload:     map[string]any{"signature": "0xdeadbeef"},
	}

	encoded, err := EncodePayment(payment)
	if err != nil {
		t.Fatalf("EncodePayment unexpected error: %v", err)
	}
	if _, err := base64.StdEncoding.DecodeString(encoded); err != nil {
		t.Fatalf("EncodePayment output is not standard base64: %v", err)
	}

	decoded, err := DecodePayment(encoded)
	if err != nil {
		t.Fatalf("DecodePayment unexpected error: %v", err)
	}
	if decoded.X402Version != 1 || decoded.Scheme != "exact" || decoded.Network != "base-sepolia" {
		t.Errorf("decoded envelope = %+v", decoded)
	}
	inner, ok := decoded.Payload.(map[string]any)
	if !ok || inner["signature"] != "0xdeadbeef" {
		t.Errorf("decoded payload = %v", decoded.Payload)
	}
}

func TestDecodePaymentMalformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"not base64", "!!not-base64!!"},
		{"base64 of non-json", base64.StdEncoding.EncodeToString([]byte("plain text"))},
		{"base64 of wrong json type", base64.StdEncoding.EncodeToString([]byte(`[1,2,3]`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePayment(tt.encoded)
			if err == nil {
				t.Fatal("DecodePayment expected error")
			}
			if !errors.Is(err, x402gate.ErrMalformedHeader) {
				t.Errorf("error = %v, want ErrMalformedHeader", err)
			}
		})
	}
}
