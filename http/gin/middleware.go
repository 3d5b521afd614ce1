// Package gin provides Gin-compatible middleware for x402 payment gating.
// The package is a thin adapter that translates gin.Context to stdlib http
// patterns and delegates gating decisions to the http package.
package gin

import (
	"github.com/gin-gonic/gin"

	httpx402 "github.com/mark3labs/x402-gate/http"
)

// NewGinX402Middleware creates a payment-gating middleware for Gin. It
// returns an error when the route configuration is invalid so broken routes
// fail at startup instead of serving traffic.
//
// The middleware calls c.Abort() after writing a 402 or 500 so the handler
// chain stops, and c.Next() when the request is admitted.
//
// Example usage:
//
//	middleware, err := NewGinX402Middleware(&httpx402.Config{
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
//	r := gin.Default()
//	r.GET("/premium", middleware, premiumHandler)
func NewGinX402Middleware(config *httpx402.Config) (gin.HandlerFunc, error) {
	gate, err := httpx402.NewGate(config)
	if err != nil {
		return nil, err
	}
	return func(c *gin.Context) {
		outcome := gate.Evaluate(c.Request)
		if outcome.Admit {
			c.Next()
			return
		}
		c.Header("Content-Type", outcome.ContentType)
		c.String(outcome.Status, "%s", outcome.Body)
		c.Abort()
	}, nil
}
