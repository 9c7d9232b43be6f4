package handler

import (
	"errors"
	"net/http"
	"regexp"

	"creatorkart/internal/domain"
	"creatorkart/internal/middleware"
	"creatorkart/internal/repository"
	"creatorkart/internal/service"

	"github.com/gin-gonic/gin"
)

type PayoutHandler struct {
	ledger      *service.Ledger
	store       *repository.Store
	creatorRepo *repository.CreatorRepository
}

func NewPayoutHandler(ledger *service.Ledger, store *repository.Store, creatorRepo *repository.CreatorRepository) *PayoutHandler {
	return &PayoutHandler{ledger: ledger, store: store, creatorRepo: creatorRepo}
}

// Create requests a payout. The amount leaves the available balance
// immediately; an operator settles the request later.
func (h *PayoutHandler) Create(c *gin.Context) {
	var req struct {
		AmountCents int64 `json:"amount_cents" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payout, err := h.ledger.RequestPayout(c.Request.Context(), middleware.GetUserID(c), req.AmountCents)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPayoutAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payout amount"})
		case errors.Is(err, domain.ErrMissingPayoutDestination):
			c.JSON(http.StatusBadRequest, gin.H{"error": "link a bank account before requesting payouts"})
		case errors.Is(err, domain.ErrInsufficientBalance):
			c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient available balance"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payout request failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payout": payout})
}

func (h *PayoutHandler) List(c *gin.Context) {
	payouts, err := h.store.PayoutsForCreator(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payout list error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payouts": payouts})
}

var last4Pattern = regexp.MustCompile(`^\d{4}$`)

// UpdateBankDetails stores the payout destination that gates RequestPayout.
func (h *PayoutHandler) UpdateBankDetails(c *gin.Context) {
	var req struct {
		BankName string `json:"bank_name" binding:"required"`
		Last4    string `json:"last4" binding:"required"`
		IFSC     string `json:"ifsc"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !last4Pattern.MatchString(req.Last4) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account last4 must be 4 digits"})
		return
	}
	profile, err := h.creatorRepo.GetByUserID(middleware.GetUserID(c))
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "creator profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile error"})
		return
	}
	profile.PayoutBankName = req.BankName
	profile.PayoutBankAccountLast4 = req.Last4
	profile.PayoutBankIFSC = req.IFSC
	if err := h.creatorRepo.UpdateProfile(profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save bank details"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
