package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	x402gate "github.com/mark3labs/x402-gate"
	"github.com/mark3labs/x402-gate/facilitator"
)

// FacilitatorClient talks to one x402 facilitator service. The embedded
// http.Client pools connections internally, so a single FacilitatorClient is
// safe for unsynchronized concurrent use and is shared across requests via
// the ClientPool.
type FacilitatorClient struct {
	// BaseURL is the facilitator endpoint, without trailing slash.
	BaseURL string

	// Client is the underlying HTTP client. Its transport provides
	// connection pooling.
	Client *http.Client

	// Timeout bounds each verify call. Zero means the route default.
	Timeout time.Duration
}

var _ facilitator.Interface = (*FacilitatorClient)(nil)

// facilitatorRequest is the request body for the /verify endpoint.
type facilitatorRequest struct {
	X402Version         int                         `json:"x402Version"`
	PaymentPayload      x402gate.PaymentPayload     `json:"paymentPayload"`
	PaymentRequirements x402gate.PaymentRequirement `json:"paymentRequirements"`
}

// Verify submits the payment and requirements to the facilitator's /verify
// endpoint. Exactly one attempt is made per call: timeouts and transport
// errors are reported as facilitator failures for the fallback policy, never
// retried here.
func (c *FacilitatorClient) Verify(ctx context.Context, payment x402gate.PaymentPayload, requirement x402gate.PaymentRequirement) (*facilitator.VerifyResponse, error) {
	body := facilitatorRequest{
		X402Version:         1,
		PaymentPayload:      payment,
		PaymentRequirements: requirement,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verify request: %w", err)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = x402gate.DefaultFacilitatorTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/verify", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create verify request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: verify exceeded %s", x402gate.ErrTimeout, timeout)
		}
		return nil, fmt.Errorf("%w: %v", x402gate.ErrFacilitatorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: verify returned status %d", x402gate.ErrFacilitatorUnavailable, resp.StatusCode)
	}

	var verifyResp facilitator.VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verifyResp); err != nil {
		return nil, fmt.Errorf("%w: undecodable verify response: %v", x402gate.ErrFacilitatorUnavailable, err)
	}

	return &verifyResp, nil
}
