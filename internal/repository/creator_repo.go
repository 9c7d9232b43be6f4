package repository

import (
	"creatorkart/internal/models"

	"gorm.io/gorm"
)

type CreatorRepository struct {
	db *gorm.DB
}

func NewCreatorRepository(db *gorm.DB) *CreatorRepository {
	return &CreatorRepository{db: db}
}

func (r *CreatorRepository) CreateProfile(p *models.CreatorProfile) error {
	return r.db.Create(p).Error
}

func (r *CreatorRepository) GetByUserID(userID uint) (*models.CreatorProfile, error) {
	var p models.CreatorProfile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *CreatorRepository) GetBySlug(slug string) (*models.CreatorProfile, error) {
	var p models.CreatorProfile
	if err := r.db.Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *CreatorRepository) UpdateProfile(p *models.CreatorProfile) error {
	return r.db.Save(p).Error
}
