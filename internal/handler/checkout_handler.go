package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"creatorkart/internal/domain"
	"creatorkart/internal/middleware"
	"creatorkart/internal/repository"
	"creatorkart/internal/service"
	"creatorkart/pkg/gateway"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	settlement *service.Settlement
	orderRepo  *repository.OrderRepository
	provider   gateway.Provider // nil when the gateway is not configured
}

func NewCheckoutHandler(settlement *service.Settlement, orderRepo *repository.OrderRepository, provider gateway.Provider) *CheckoutHandler {
	return &CheckoutHandler{settlement: settlement, orderRepo: orderRepo, provider: provider}
}

// Checkout opens a PENDING order and a gateway session for it. Without a
// configured gateway the order is marked paid immediately — dev mode only.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	order, err := h.settlement.CreateOrder(ctx, middleware.GetUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotAvailable):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not available"})
		case errors.Is(err, domain.ErrProfileIncomplete):
			c.JSON(http.StatusBadRequest, gin.H{"error": "profile incomplete: add name, phone and email first"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
		}
		return
	}

	if h.provider == nil {
		// Dev fallback: settle immediately.
		order, err = h.settlement.MarkPaid(ctx, order.ID, "")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "settlement failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": order, "dev_fallback": true})
		return
	}

	sess, err := h.provider.CreateSession(ctx, gateway.SessionRequest{
		OrderRef:      order.Reference,
		OrderID:       order.ID,
		AmountCents:   order.AmountTotalCents,
		Currency:      order.Currency,
		CustomerEmail: order.BuyerEmail,
	})
	if err != nil {
		log.Printf("[Checkout] gateway session failed for order %d: %v", order.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable"})
		return
	}
	if err := h.settlement.AttachGatewayOrder(ctx, order.ID, sess.GatewayOrderID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order, "checkout": sess})
}

// GetOrder returns one of the buyer's own orders (checkout success page).
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	order, err := h.orderRepo.GetByID(uint(id))
	if errors.Is(err, domain.ErrNotFound) || (err == nil && order.BuyerID != middleware.GetUserID(c)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Library lists the buyer's paid orders.
func (h *CheckoutHandler) Library(c *gin.Context) {
	orders, err := h.orderRepo.ListPaidForBuyer(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "library error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
