package http

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// Classification is the classifier's verdict for one request. Bypass short-
// circuits enforcement entirely; IsBrowser only selects the reject format.
type Classification struct {
	// Bypass means the request never reaches payment verification.
	Bypass bool

	// IsBrowser selects the HTML paywall over the JSON body on rejection.
	IsBrowser bool
}

type contextKey string

// subRequestContextKey marks internally-generated sub-requests so they skip
// enforcement like the parent-request check in proxy deployments.
const subRequestContextKey = contextKey("x402_subrequest")

// WithSubRequest marks ctx as belonging to an internally-generated sub-request.
// Hosts that issue internal fetches on behalf of an already-gated request
// should derive the sub-request's context through this.
func WithSubRequest(ctx context.Context) context.Context {
	return context.WithValue(ctx, subRequestContextKey, true)
}

func isSubRequest(ctx context.Context) bool {
	v, _ := ctx.Value(subRequestContextKey).(bool)
	return v
}

// Classify inspects method and headers to decide bypass-or-enforce and
// browser-or-API. The browser verdict never influences the bypass decision.
func Classify(r *http.Request) Classification {
	return Classification{
		Bypass:    shouldBypass(r),
		IsBrowser: isBrowserRequest(r),
	}
}

// shouldBypass reports whether the request skips payment verification:
// protocol-level methods, WebSocket upgrades, and internal sub-requests.
func shouldBypass(r *http.Request) bool {
	switch r.Method {
	case http.MethodOptions, http.MethodHead, http.MethodTrace:
		return true
	}
	if isWebSocketUpgrade(r) {
		return true
	}
	return isSubRequest(r.Context())
}

// isWebSocketUpgrade reports whether the request is a WebSocket handshake:
// Upgrade equals "websocket" and Connection contains "upgrade", both
// case-insensitive.
func isWebSocketUpgrade(r *http.Request) bool {
	upgrade := strings.ToLower(r.Header.Get("Upgrade"))
	connection := strings.ToLower(r.Header.Get("Connection"))
	return upgrade == "websocket" && strings.Contains(connection, "upgrade")
}

// isBrowserRequest decides the reject format using a priority-ordered set of
// signals, first match wins:
//
//  1. Accept header with q-values: text/html above 0.5 means browser;
//     application/json above 0.5 with text/html below 0.3 means API.
//  2. Form content types (multipart/form-data, x-www-form-urlencoded) mean
//     browser.
//  3. A desktop-browser User-Agent counts only when paired with an Upgrade
//     header, a missing Accept header, or a positive HTML priority; the UA
//     string alone is not sufficient.
func isBrowserRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	hasAccept := len(r.Header.Values("Accept")) > 0

	if hasAccept {
		htmlPriority := parseAcceptPriority(accept, "text/html")
		jsonPriority := parseAcceptPriority(accept, "application/json")

		if htmlPriority > 0.5 {
			return true
		}
		if jsonPriority > 0.5 && htmlPriority < 0.3 {
			return false
		}
	}

	contentType := strings.ToLower(r.Header.Get("Content-Type"))
	isBrowserContentType := strings.HasPrefix(contentType, "multipart/form-data") ||
		strings.HasPrefix(contentType, "application/x-www-form-urlencoded")

	hasBrowserUA := isBrowserUserAgent(r.Header.Get("User-Agent"))
	hasUpgrade := r.Header.Get("Upgrade") != ""

	return isBrowserContentType ||
		(hasBrowserUA &&
			(hasUpgrade || !hasAccept || parseAcceptPriority(accept, "text/html") > 0))
}

// isBrowserUserAgent requires a known desktop-browser token and rejects known
// API-client tokens. The positive and negative lists must both pass.
func isBrowserUserAgent(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	ua := strings.ToLower(userAgent)

	hasBrowser := strings.Contains(ua, "mozilla") &&
		(strings.Contains(ua, "chrome") ||
			strings.Contains(ua, "safari") ||
			strings.Contains(ua, "firefox") ||
			strings.Contains(ua, "edge") ||
			strings.Contains(ua, "opera") ||
			strings.Contains(ua, "brave") ||
			strings.Contains(ua, "webkit"))

	isAPIClient := strings.Contains(ua, "curl") ||
		strings.Contains(ua, "wget") ||
		strings.Contains(ua, "python-requests") ||
		strings.Contains(ua, "go-http-client") ||
		strings.Contains(ua, "java/") ||
		strings.Contains(ua, "okhttp") ||
		strings.Contains(ua, "httpie") ||
		strings.Contains(ua, "postman") ||
		strings.Contains(ua, "insomnia") ||
		strings.HasPrefix(ua, "rest-client") ||
		strings.HasPrefix(ua, "http")

	return hasBrowser && !isAPIClient
}

// parseAcceptPriority returns the q-value the Accept header assigns to a media
// type. Listed entries match exactly or by type prefix; anything unmatched
// falls back to the "*/*" entry exactly once, else 0.0. Missing q parameters
// default to 1.0 and parsed values are clamped to [0,1].
func parseAcceptPriority(acceptHeader, mediaType string) float64 {
	for _, part := range strings.Split(acceptHeader, ",") {
		fields := strings.Split(strings.TrimSpace(part), ";")
		mime := strings.TrimSpace(fields[0])

		matches := mime == mediaType ||
			(mediaType == "*/*" && mime == "*/*") ||
			(strings.HasPrefix(mime, mediaType) && strings.HasPrefix(mime[len(mediaType):], "/"))
		if !matches {
			continue
		}

		qValue := 1.0
		for _, param := range fields[1:] {
			param = strings.TrimSpace(param)
			if rest, ok := strings.CutPrefix(param, "q="); ok {
				if q, err := strconv.ParseFloat(strings.TrimSpace(rest), 64); err == nil {
					qValue = math.Min(math.Max(q, 0.0), 1.0)
				}
			}
		}
		return qValue
	}

	// Wildcard lookup recurses at most one level.
	if mediaType != "*/*" {
		return parseAcceptPriority(acceptHeader, "*/*")
	}
	return 0.0
}
