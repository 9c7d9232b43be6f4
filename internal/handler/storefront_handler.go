package handler

import (
	"errors"
	"net/http"

	"creatorkart/internal/domain"
	"creatorkart/internal/repository"

	"github.com/gin-gonic/gin"
)

// StorefrontHandler serves the public creator pages: profile plus active
// products only.
type StorefrontHandler struct {
	creatorRepo *repository.CreatorRepository
	productRepo *repository.ProductRepository
}

func NewStorefrontHandler(creatorRepo *repository.CreatorRepository, productRepo *repository.ProductRepository) *StorefrontHandler {
	return &StorefrontHandler{creatorRepo: creatorRepo, productRepo: productRepo}
}

func (h *StorefrontHandler) GetStorefront(c *gin.Context) {
	profile, err := h.creatorRepo.GetBySlug(c.Param("slug"))
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "storefront not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storefront error"})
		return
	}
	products, err := h.productRepo.ListActiveByCreator(profile.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storefront error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"creator":  profile,
		"products": products,
	})
}

func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	profile, err := h.creatorRepo.GetBySlug(c.Param("slug"))
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "storefront not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storefront error"})
		return
	}
	product, err := h.productRepo.GetBySlug(profile.UserID, c.Param("productSlug"))
	if errors.Is(err, domain.ErrNotFound) || (err == nil && product.Status != domain.ProductStatusActive) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storefront error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"creator": profile,
		"product": product,
	})
}
