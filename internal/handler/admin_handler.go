package handler

import (
	"errors"
	"net/http"
	"strconv"

	"creatorkart/internal/domain"
	"creatorkart/internal/repository"
	"creatorkart/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler is the operator surface: payout settlement, manual
// adjustments, and ledger reconciliation.
type AdminHandler struct {
	ledger *service.Ledger
	store  *repository.Store
}

func NewAdminHandler(ledger *service.Ledger, store *repository.Store) *AdminHandler {
	return &AdminHandler{ledger: ledger, store: store}
}

func (h *AdminHandler) ListPayouts(c *gin.Context) {
	payouts, err := h.store.PayoutsByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payout list error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payouts": payouts})
}

// SettlePayout records the settlement outcome. Repeated calls after the
// first settlement are no-ops, so an operator double-click is harmless.
func (h *AdminHandler) SettlePayout(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payout id"})
		return
	}
	var req struct {
		Outcome string `json:"outcome" binding:"required,oneof=COMPLETED FAILED REJECTED"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.ledger.MarkPayoutSettled(c.Request.Context(), uint(id), req.Outcome); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "payout not found"})
		case errors.Is(err, domain.ErrInvalidPayoutOutcome):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid outcome"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "settlement failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"settled": true})
}

func (h *AdminHandler) Adjust(c *gin.Context) {
	var req struct {
		WalletID    uint   `json:"wallet_id" binding:"required"`
		AmountCents int64  `json:"amount_cents" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.ledger.Adjust(c.Request.Context(), req.WalletID, req.AmountCents, req.Description); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
		case errors.Is(err, domain.ErrInsufficientBalance):
			c.JSON(http.StatusBadRequest, gin.H{"error": "adjustment would make balance negative"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "adjustment failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"adjusted": true})
}

// ReconcileWallet replays a wallet's transaction log against its stored
// balances.
func (h *AdminHandler) ReconcileWallet(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wallet id"})
		return
	}
	rec, err := h.ledger.Reconcile(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reconciliation": rec})
}
