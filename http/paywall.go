package http

import (
	"bytes"
	"html/template"

	x402gate "github.com/mark3labs/x402-gate"
)

// paywallTemplate renders the browser-facing 402 page. It embeds the
// client-safe message and every accepted payment option so wallet extensions
// and humans both have enough to act on.
var paywallTemplate = template.Must(template.New("paywall").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>402 Payment Required</title>
<style>
body { font-family: -apple-system, system-ui, sans-serif; margin: 0; background: #f6f7f9; color: #1a1d21; }
main { max-width: 640px; margin: 8vh auto; padding: 2rem; background: #fff; border-radius: 12px; box-shadow: 0 1px 4px rgba(0,0,0,.08); }
h1 { font-size: 1.4rem; margin-top: 0; }
p.message { color: #b42318; }
table { width: 100%; border-collapse: collapse; margin-top: 1rem; font-size: .9rem; }
td { padding: .35rem .5rem; border-top: 1px solid #eceef1; word-break: break-all; }
td:first-child { color: #667085; white-space: nowrap; width: 9rem; }
</style>
</head>
<body>
<main>
<h1>402 Payment Required</h1>
{{if .Message}}<p class="message">{{.Message}}</p>{{end}}
<p>Access to this resource requires an on-chain micropayment. Resend the request with a valid <code>X-PAYMENT</code> header matching one of the accepted options below.</p>
{{range .Accepts}}
<table>
<tr><td>Scheme</td><td>{{.Scheme}}</td></tr>
<tr><td>Network</td><td>{{.Network}}</td></tr>
<tr><td>Amount (atomic)</td><td>{{.MaxAmountRequired}}</td></tr>
<tr><td>Asset</td><td>{{.Asset}}</td></tr>
<tr><td>Pay to</td><td>{{.PayTo}}</td></tr>
<tr><td>Resource</td><td>{{.Resource}}</td></tr>
{{if .Description}}<tr><td>Description</td><td>{{.Description}}</td></tr>{{end}}
<tr><td>Valid for</td><td>{{.MaxTimeoutSeconds}}s</td></tr>
</table>
{{end}}
</main>
</body>
</html>
`))

type paywallData struct {
	Message string
	Accepts []x402gate.PaymentRequirement
}

// renderPaywallHTML produces the HTML paywall document for browser clients.
func renderPaywallHTML(message string, accepts []x402gate.PaymentRequirement) ([]byte, error) {
	var buf bytes.Buffer
	if err := paywallTemplate.Execute(&buf, paywallData{Message: message, Accepts: accepts}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
