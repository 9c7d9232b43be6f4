package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	p := NewRazorpayProvider("rzp_test_key", "key_secret", "whsec_123")
	body := []byte(`{"event":"payment.captured"}`)

	assert.True(t, p.VerifyWebhookSignature(body, sign("whsec_123", body)))
	assert.False(t, p.VerifyWebhookSignature(body, sign("wrong_secret", body)))
	assert.False(t, p.VerifyWebhookSignature([]byte(`tampered`), sign("whsec_123", body)))
	assert.False(t, p.VerifyWebhookSignature(body, ""))
	assert.False(t, p.VerifyWebhookSignature(body, "not-hex"))
}

func TestVerifyWebhookSignature_NoSecretConfigured(t *testing.T) {
	p := NewRazorpayProvider("rzp_test_key", "key_secret", "")
	body := []byte(`{}`)
	assert.False(t, p.VerifyWebhookSignature(body, sign("", body)), "missing secret must never verify")
}
