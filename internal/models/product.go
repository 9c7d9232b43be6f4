package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CreatorID   uint   `gorm:"not null;index;uniqueIndex:idx_creator_slug" json:"creator_id"`
	Type        string `gorm:"size:20;not null" json:"type"` // DIGITAL | SESSION | TELEGRAM
	Name        string `gorm:"size:200;not null" json:"name"`
	Slug        string `gorm:"size:64;not null;uniqueIndex:idx_creator_slug" json:"slug"`
	Description string `gorm:"size:2048" json:"description"`
	PriceCents  int64  `gorm:"not null" json:"price_cents"`
	Currency    string `gorm:"size:3;not null;default:'INR'" json:"currency"`
	Status      string `gorm:"size:20;not null;index;default:'DRAFT'" json:"status"`

	// Delivery instructions resolved at fulfillment time.
	DeliveryMethod   string `gorm:"size:20;default:'MANUAL'" json:"delivery_method"` // LINK | FILE | MANUAL
	DeliveryAssetURL string `gorm:"size:512" json:"delivery_asset_url"`

	SupplyLimit *int `json:"supply_limit"` // nil = unlimited
	SupplySold  int  `gorm:"not null;default:0" json:"supply_sold"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Creator User `gorm:"foreignKey:CreatorID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// SoldOut reports whether a purchase of qty more units would exceed the
// supply limit.
func (p *Product) SoldOut(qty int) bool {
	return p.SupplyLimit != nil && p.SupplySold+qty > *p.SupplyLimit
}
