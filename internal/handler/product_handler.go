package handler

import (
	"errors"
	"net/http"
	"strconv"

	"creatorkart/internal/domain"
	"creatorkart/internal/middleware"
	"creatorkart/internal/models"
	"creatorkart/internal/repository"

	"github.com/gin-gonic/gin"
)

// ProductHandler is the creator's product CRUD. Public reads go through
// StorefrontHandler.
type ProductHandler struct {
	productRepo *repository.ProductRepository
}

func NewProductHandler(productRepo *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{productRepo: productRepo}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productRepo.ListByCreator(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product list error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req struct {
		Type             string `json:"type" binding:"required,oneof=DIGITAL SESSION TELEGRAM"`
		Name             string `json:"name" binding:"required"`
		Slug             string `json:"slug" binding:"required"`
		Description      string `json:"description"`
		PriceCents       int64  `json:"price_cents" binding:"required,min=1"`
		Currency         string `json:"currency"`
		DeliveryMethod   string `json:"delivery_method" binding:"omitempty,oneof=LINK FILE MANUAL"`
		DeliveryAssetURL string `json:"delivery_asset_url"`
		SupplyLimit      *int   `json:"supply_limit" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}
	if req.DeliveryMethod == "" {
		req.DeliveryMethod = domain.DeliveryMethodManual
	}
	p := &models.Product{
		CreatorID:        middleware.GetUserID(c),
		Type:             req.Type,
		Name:             req.Name,
		Slug:             req.Slug,
		Description:      req.Description,
		PriceCents:       req.PriceCents,
		Currency:         req.Currency,
		Status:           domain.ProductStatusDraft,
		DeliveryMethod:   req.DeliveryMethod,
		DeliveryAssetURL: req.DeliveryAssetURL,
		SupplyLimit:      req.SupplyLimit,
	}
	if err := h.productRepo.Create(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": p})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	p, err := h.productRepo.GetByID(uint(id))
	if errors.Is(err, domain.ErrNotFound) || (err == nil && p.CreatorID != middleware.GetUserID(c)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product error"})
		return
	}

	var req struct {
		Name             *string `json:"name"`
		Description      *string `json:"description"`
		PriceCents       *int64  `json:"price_cents" binding:"omitempty,min=1"`
		Status           *string `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE ARCHIVED"`
		DeliveryMethod   *string `json:"delivery_method" binding:"omitempty,oneof=LINK FILE MANUAL"`
		DeliveryAssetURL *string `json:"delivery_asset_url"`
		SupplyLimit      *int    `json:"supply_limit" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.PriceCents != nil {
		p.PriceCents = *req.PriceCents
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.DeliveryMethod != nil {
		p.DeliveryMethod = *req.DeliveryMethod
	}
	if req.DeliveryAssetURL != nil {
		p.DeliveryAssetURL = *req.DeliveryAssetURL
	}
	if req.SupplyLimit != nil {
		p.SupplyLimit = req.SupplyLimit
	}
	if err := h.productRepo.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}
