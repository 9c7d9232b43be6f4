package repository

import (
	"creatorkart/internal/domain"
	"creatorkart/internal/models"

	"gorm.io/gorm"
)

// OrderRepository serves the read surfaces (buyer library, order status).
// All order mutations go through the settlement service's Store.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) GetByID(id uint) (*models.Order, error) {
	var o models.Order
	if err := r.db.Preload("Items").First(&o, id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *OrderRepository) GetByReference(ref string) (*models.Order, error) {
	var o models.Order
	if err := r.db.Preload("Items").Where("reference = ?", ref).First(&o).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// ListPaidForBuyer returns the buyer's library of purchased orders.
func (r *OrderRepository) ListPaidForBuyer(buyerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("buyer_id = ? AND status = ?", buyerID, domain.OrderStatusPaid).
		Order("paid_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
