package http

import (
	"encoding/json"
	"net/http"

	x402gate "github.com/mark3labs/x402-gate"
)

// Outcome is the gate's verdict for one request. Admit means the request
// continues to the protected handler; otherwise Status, ContentType, and Body
// describe the response to write.
type Outcome struct {
	Admit       bool
	Status      int
	ContentType string
	Body        []byte
}

// admitOutcome is the shared admit verdict.
var admitOutcome = Outcome{Admit: true}

// renderReject builds the 402 rejection for the given format. Browsers get
// the HTML paywall, API clients the JSON body with the "accepts" array.
// Multiple simultaneous accept options are supported for multi-asset routes.
func renderReject(accepts []x402gate.PaymentRequirement, isBrowser bool, message string) Outcome {
	if isBrowser {
		if body, err := renderPaywallHTML(message, accepts); err == nil {
			return Outcome{
				Status:      http.StatusPaymentRequired,
				ContentType: "text/html; charset=utf-8",
				Body:        body,
			}
		}
		// Template failure degrades to the JSON body rather than a blank page.
	}

	response := x402gate.PaymentRequirementsResponse{
		X402Version: 1,
		Error:       message,
		Accepts:     accepts,
	}
	body, err := json.Marshal(response)
	if err != nil {
		// Requirements are plain strings and maps; reaching this means a bug,
		// not bad input. Reply with the opaque configuration error.
		return configErrorOutcome()
	}
	return Outcome{
		Status:      http.StatusPaymentRequired,
		ContentType: "application/json; charset=utf-8",
		Body:        body,
	}
}

// configErrorOutcome is the opaque client response for any configuration
// failure. Operator detail stays in the logs.
func configErrorOutcome() Outcome {
	return Outcome{
		Status:      http.StatusInternalServerError,
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(x402gate.MsgConfigurationError),
	}
}

// facilitatorErrorOutcome is the fail-closed response when the facilitator is
// unreachable and the route's fallback is "error". It bypasses the renderer.
func facilitatorErrorOutcome() Outcome {
	return Outcome{
		Status:      http.StatusInternalServerError,
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte("Internal server error"),
	}
}

// writeOutcome writes a reject outcome to the response.
func writeOutcome(w http.ResponseWriter, o Outcome) {
	w.Header().Set("Content-Type", o.ContentType)
	w.WriteHeader(o.Status)
	// Body write failures mean the client went away; the status is committed.
	_, _ = w.Write(o.Body)
}
