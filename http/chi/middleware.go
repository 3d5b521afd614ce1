// Package chi provides Chi-compatible middleware for x402 payment gating.
// The package is a thin adapter: gate construction, request classification,
// and facilitator verification all live in the http package.
package chi

import (
	"net/http"

	httpx402 "github.com/mark3labs/x402-gate/http"
)

// NewChiX402Middleware creates a payment-gating middleware for Chi routers.
// It returns an error when the route configuration is invalid so broken
// routes fail at startup instead of serving traffic.
//
// Example usage:
//
//	middleware, err := NewChiX402Middleware(&httpx402.Config{
//	    Route: x402gate.RouteConfig{
//	        Enabled:        true,
//	        Amount:         "0.0001",
//	        PayTo:          "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0",
//	        FacilitatorURL: "https://facilitator.example.com",
//	        Network:        "base-sepolia",
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r := chi.NewRouter()
//	r.Route("/premium", func(r chi.Router) {
//	    r.Use(middleware)
//	    r.Get("/data", premiumHandler)
//	})
func NewChiX402Middleware(config *httpx402.Config) (func(http.Handler) http.Handler, error) {
	return httpx402.NewX402Middleware(config)
}
