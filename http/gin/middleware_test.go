package gin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	x402gate "github.com/mark3labs/x402-gate"
	"github.com/mark3labs/x402-gate/encoding"
	"github.com/mark3labs/x402-gate/facilitator"
	httpx402 "github.com/mark3labs/x402-gate/http"
)

func testConfig(facilitatorURL string) *httpx402.Config {
	return &httpx402.Config{
		Route: x402gate.RouteConfig{
			Enabled:        true,
			Amount:         "0.0001",
			PayTo:          "0x209693Bc6afc0C5328bA36FaF03C514EF312287C",
			FacilitatorURL: facilitatorURL,
			Network:        "base-sepolia",
		},
	}
}

func paymentHeader(t *testing.T) string {
	t.Helper()
	header, err := encoding.EncodePayment(x402gate.PaymentPayload{
		X402Version: 1,
		Scheme:      "exact",
		Network:     "base-sepolia",
		Payload:     map[string]any{"signature": "0xabc"},
	})
	if err != nil {
		t.Fatalf("encode payment: %v", err)
	}
	return header
}

func newRouter(t *testing.T, cfg *httpx402.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	middleware, err := NewGinX402Middleware(cfg)
	if err != nil {
		t.Fatalf("NewGinX402Middleware: %v", err)
	}

	r := gin.New()
	r.GET("/premium", middleware, func(c *gin.Context) {
		c.String(http.StatusOK, "premium")
	})
	return r
}

func TestGinMiddlewareUnpaidReturns402(t *testing.T) {
	r := newRouter(t, testConfig("http://facilitator.test"))

	req := httptest.NewRequest(http.MethodGet, "/premium", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var body x402gate.PaymentRequirementsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("402 body undecodable: %v", err)
	}
	if len(body.Accepts) != 1 || body.Accepts[0].Scheme != "exact" {
		t.Errorf("accepts = %+v", body.Accepts)
	}
}

func TestGinMiddlewarePaidCallsHandler(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(facilitator.VerifyResponse{IsValid: true, Payer: "0xpayer"})
	}))
	defer server.Close()

	r := newRouter(t, testConfig(server.URL))

	req := httptest.NewRequest(http.MethodGet, "/premium", nil)
	req.Header.Set("X-PAYMENT", paymentHeader(t))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "premium" {
		t.Errorf("paid request = %d %q, want 200 premium", rec.Code, rec.Body.String())
	}
}

func TestGinMiddlewareAbortsChainOnReject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(facilitator.VerifyResponse{IsValid: false, InvalidReason: "expired"})
	}))
	defer server.Close()

	gin.SetMode(gin.TestMode)
	middleware, err := NewGinX402Middleware(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewGinX402Middleware: %v", err)
	}

	handlerCalled := false
	r := gin.New()
	r.GET("/premium", middleware, func(c *gin.Context) {
		handlerCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/premium", nil)
	req.Header.Set("X-PAYMENT", paymentHeader(t))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402", rec.Code)
	}
	if handlerCalled {
		t.Error("handler ran after rejection")
	}
}

func TestGinMiddlewareRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig("http://facilitator.test")
	cfg.Route.TimeoutSeconds = 9999
	if _, err := NewGinX402Middleware(cfg); err == nil {
		t.Fatal("expected error for out-of-range timeout")
	}
}
