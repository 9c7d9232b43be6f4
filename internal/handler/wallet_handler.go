package handler

import (
	"errors"
	"net/http"

	"creatorkart/internal/domain"
	"creatorkart/internal/middleware"
	"creatorkart/internal/repository"

	"github.com/gin-gonic/gin"
)

// WalletHandler is the creator's read-only wallet surface. Balance
// mutations happen only through ledger operations.
type WalletHandler struct {
	store *repository.Store
}

func NewWalletHandler(store *repository.Store) *WalletHandler {
	return &WalletHandler{store: store}
}

func (h *WalletHandler) GetWallet(c *gin.Context) {
	ctx := c.Request.Context()
	wallet, err := h.store.WalletForCreator(ctx, middleware.GetUserID(c))
	if errors.Is(err, domain.ErrNotFound) {
		// No sales yet; the wallet is created lazily on first credit.
		c.JSON(http.StatusOK, gin.H{
			"available_balance_cents": 0,
			"pending_balance_cents":   0,
			"total_paid_out_cents":    0,
			"transactions":            []struct{}{},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "wallet error"})
		return
	}
	txs, err := h.store.TransactionsForWallet(ctx, wallet.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "wallet error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wallet":                  wallet,
		"available_balance_cents": wallet.AvailableBalanceCents,
		"pending_balance_cents":   wallet.PendingBalanceCents,
		"total_paid_out_cents":    wallet.TotalPaidOutCents,
		"transactions":            txs,
	})
}
