package gateway

import "context"

// SessionRequest describes one checkout to open with the payment gateway.
type SessionRequest struct {
	OrderRef      string // internal order reference, echoed back in webhooks
	OrderID       uint
	AmountCents   int64
	Currency      string
	Description   string
	CustomerEmail string
}

// Session is what the client needs to launch the hosted checkout.
type Session struct {
	GatewayOrderID string `json:"gateway_order_id"`
	KeyID          string `json:"key_id"`
	AmountCents    int64  `json:"amount_cents"`
	Currency       string `json:"currency"`
}

// Provider abstracts the payment gateway. A nil provider means the gateway
// is not configured and checkout uses the dev fallback path.
type Provider interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	// VerifyWebhookSignature checks the signature header against the raw
	// request body. Constant-time comparison.
	VerifyWebhookSignature(body []byte, signature string) bool
}
