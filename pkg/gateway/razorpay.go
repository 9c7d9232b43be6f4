package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayProvider creates gateway orders and verifies webhook signatures.
// Amounts are passed in minor units (paise), which is what Razorpay expects.
type RazorpayProvider struct {
	client        *razorpay.Client
	keyID         string
	webhookSecret string
}

func NewRazorpayProvider(keyID, keySecret, webhookSecret string) *RazorpayProvider {
	return &RazorpayProvider{
		client:        razorpay.NewClient(keyID, keySecret),
		keyID:         keyID,
		webhookSecret: webhookSecret,
	}
}

func (p *RazorpayProvider) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	data := map[string]interface{}{
		"amount":   req.AmountCents,
		"currency": req.Currency,
		"receipt":  req.OrderRef,
		"notes": map[string]interface{}{
			"order_id": fmt.Sprintf("%d", req.OrderID),
		},
	}
	rzOrder, err := p.client.Order.Create(data, nil)
	if err != nil {
		return nil, err
	}
	id, _ := rzOrder["id"].(string)
	return &Session{
		GatewayOrderID: id,
		KeyID:          p.keyID,
		AmountCents:    req.AmountCents,
		Currency:       req.Currency,
	}, nil
}

func (p *RazorpayProvider) VerifyWebhookSignature(body []byte, signature string) bool {
	if p.webhookSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(p.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
