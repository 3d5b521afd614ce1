package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	x402gate "github.com/mark3labs/x402-gate"
	"github.com/mark3labs/x402-gate/encoding"
)

// PaymentHeader is the request header carrying the base64-encoded payment
// proof.
const PaymentHeader = "X-PAYMENT"

// Config configures a payment gate for one protected route.
type Config struct {
	// Route holds the operator-supplied settings for this route.
	Route x402gate.RouteConfig

	// Pool shares facilitator clients across gates. A nil pool gets replaced
	// with a gate-private one.
	Pool *ClientPool

	// HandleBypassLocally makes the gate answer bypassed OPTIONS, HEAD, and
	// TRACE requests itself instead of forwarding them to the next handler.
	// Upgrade and sub-requests are always forwarded.
	HandleBypassLocally bool

	// Logger receives operator-facing diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Gate enforces payment on requests to a single route. Construct one with
// NewGate and share it freely; Evaluate is safe for concurrent use.
type Gate struct {
	settings *x402gate.RouteSettings
	pool     *ClientPool
	logger   *slog.Logger
}

// NewGate parses and validates the route configuration once. Invalid
// configuration is rejected here so a misconfigured route never serves
// traffic.
func NewGate(cfg *Config) (*Gate, error) {
	settings, err := cfg.Route.Parse()
	if err != nil {
		return nil, err
	}
	pool := cfg.Pool
	if pool == nil {
		pool = NewClientPool()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{settings: settings, pool: pool, logger: logger}, nil
}

// Evaluate decides whether the request may reach the protected handler.
// Classification happens before enforcement so preflight, upgrade, and
// sub-requests never pay.
func (g *Gate) Evaluate(r *http.Request) Outcome {
	if !g.settings.Enabled {
		return admitOutcome
	}

	cls := Classify(r)
	if cls.Bypass {
		return admitOutcome
	}

	// Requirements are built up front: every rejection body needs the
	// accepts list, and a route that cannot state its price is broken.
	requirement, err := x402gate.BuildRequirements(g.settings, r.URL.Path)
	if err != nil {
		g.logger.Error("payment requirements unavailable",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		return configErrorOutcome()
	}
	accepts := []x402gate.PaymentRequirement{requirement}

	header := r.Header.Get(PaymentHeader)
	if header == "" {
		return renderReject(accepts, cls.IsBrowser, x402gate.MsgPaymentRequired)
	}

	if err := x402gate.ValidatePaymentHeader(header); err != nil {
		g.logger.Debug("payment header rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		return renderReject(accepts, cls.IsBrowser, x402gate.MsgInvalidPayment)
	}

	payload, err := encoding.DecodePayment(header)
	if err != nil {
		g.logger.Debug("payment header undecodable",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		return renderReject(accepts, cls.IsBrowser, x402gate.MsgInvalidPayment)
	}

	if g.settings.FacilitatorURL == "" {
		g.logger.Error("no facilitator configured for enforced route",
			slog.String("path", r.URL.Path))
		return configErrorOutcome()
	}

	client := g.pool.Get(g.settings.FacilitatorURL, g.settings.Timeout)
	// One verification attempt per request. Retrying a payment proof risks
	// double-spend accounting on the facilitator side.
	resp, err := client.Verify(r.Context(), payload, requirement)
	if err != nil {
		g.logger.Warn("facilitator verification failed",
			slog.String("facilitator", g.settings.FacilitatorURL),
			slog.String("fallback", g.settings.Fallback.String()),
			slog.String("error", err.Error()))
		if g.settings.Fallback == x402gate.FallbackPass {
			return admitOutcome
		}
		return facilitatorErrorOutcome()
	}

	if !resp.IsValid {
		g.logger.Info("payment rejected by facilitator",
			slog.String("path", r.URL.Path),
			slog.String("reason", resp.InvalidReason))
		return renderReject(accepts, cls.IsBrowser, x402gate.MsgVerificationFailed)
	}

	g.logger.Debug("payment verified",
		slog.String("path", r.URL.Path),
		slog.String("payer", resp.Payer))
	return admitOutcome
}

// NewX402Middleware wraps handlers with payment enforcement. The returned
// middleware composes with net/http, chi, and anything else that speaks
// func(http.Handler) http.Handler.
func NewX402Middleware(cfg *Config) (func(http.Handler) http.Handler, error) {
	gate, err := NewGate(cfg)
	if err != nil {
		return nil, err
	}
	handleBypass := cfg.HandleBypassLocally
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if handleBypass && gate.settings.Enabled {
				cls := Classify(r)
				if cls.Bypass && answerBypass(w, r) {
					return
				}
			}
			outcome := gate.Evaluate(r)
			if outcome.Admit {
				next.ServeHTTP(w, r)
				return
			}
			writeOutcome(w, outcome)
		})
	}, nil
}

// answerBypass serves preflight-style bypassed requests directly. It reports
// false for upgrade and sub-requests, which must reach the origin handler.
func answerBypass(w http.ResponseWriter, r *http.Request) bool {
	if isWebSocketUpgrade(r) || isSubRequest(r.Context()) {
		return false
	}
	switch r.Method {
	case http.MethodOptions:
		writeCORSEcho(w, r)
		w.WriteHeader(http.StatusNoContent)
		return true
	case http.MethodHead:
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(http.StatusOK)
		return true
	case http.MethodTrace:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return true
	}
	return false
}

// writeCORSEcho reflects the preflight request's CORS negotiation headers so
// browsers can complete the handshake without the origin server.
func writeCORSEcho(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	if origin := r.Header.Get("Origin"); origin != "" {
		h.Set("Access-Control-Allow-Origin", origin)
	} else {
		h.Set("Access-Control-Allow-Origin", "*")
	}
	if method := r.Header.Get("Access-Control-Request-Method"); method != "" {
		h.Set("Access-Control-Allow-Methods", method)
	} else {
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	}
	if headers := r.Header.Get("Access-Control-Request-Headers"); headers != "" {
		h.Set("Access-Control-Allow-Headers", headers)
	} else {
		h.Set("Access-Control-Allow-Headers", strings.Join([]string{"Content-Type", PaymentHeader}, ", "))
	}
	h.Set("Access-Control-Max-Age", "86400")
}

// IsConfigError reports whether a gate construction error stems from the
// operator's route configuration rather than the environment.
func IsConfigError(err error) bool {
	return errors.Is(err, x402gate.ErrInvalidConfig)
}
