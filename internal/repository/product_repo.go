package repository

import (
	"creatorkart/internal/domain"
	"creatorkart/internal/models"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) GetByID(id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *ProductRepository) GetBySlug(creatorID uint, slug string) (*models.Product, error) {
	var p models.Product
	if err := r.db.Where("creator_id = ? AND slug = ?", creatorID, slug).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *ProductRepository) ListByCreator(creatorID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListActiveByCreator returns the public storefront listing.
func (r *ProductRepository) ListActiveByCreator(creatorID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("creator_id = ? AND status = ?", creatorID, domain.ProductStatusActive).
		Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) Update(p *models.Product) error {
	return r.db.Save(p).Error
}
