package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"creatorkart/internal/domain"
	"creatorkart/internal/service"
	"creatorkart/pkg/gateway"

	"github.com/gin-gonic/gin"
)

// WebhookHandler settles orders from gateway events. Delivery is
// at-least-once: MarkPaid is idempotent, so redelivered events are safe.
type WebhookHandler struct {
	settlement *service.Settlement
	provider   gateway.Provider
}

func NewWebhookHandler(settlement *service.Settlement, provider gateway.Provider) *WebhookHandler {
	return &WebhookHandler{settlement: settlement, provider: provider}
}

// razorpayEvent is the subset of the webhook payload we act on. The internal
// order ID travels in the payment notes set at session creation.
type razorpayEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string            `json:"id"`
				OrderID string            `json:"order_id"`
				Notes   map[string]string `json:"notes"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if h.provider == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gateway not configured"})
		return
	}
	if !h.provider.VerifyWebhookSignature(body, c.GetHeader("X-Razorpay-Signature")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	var event razorpayEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if event.Event != "payment.captured" && event.Event != "order.paid" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	raw := event.Payload.Payment.Entity.Notes["order_id"]
	orderID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || orderID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order reference missing"})
		return
	}

	_, err = h.settlement.MarkPaid(c.Request.Context(), uint(orderID), event.Payload.Payment.Entity.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrOrderNotPending):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			// Infrastructure failure: 500 so the gateway redelivers.
			log.Printf("[Webhook] settlement failed for order %d: %v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "settlement failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
