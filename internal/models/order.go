package models

import (
	"time"

	"creatorkart/internal/domain"

	"gorm.io/gorm"
)

// Order is a purchase attempt. Buyer contact details and the fee split are
// snapshotted at creation so later profile or rate changes never alter a
// historical order. Status moves PENDING -> PAID (terminal) or
// PENDING -> FAILED/CANCELLED, only through the settlement service.
type Order struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"uniqueIndex;size:64;not null" json:"reference"`
	BuyerID   uint   `gorm:"not null;index" json:"buyer_id"`
	CreatorID uint   `gorm:"not null;index" json:"creator_id"`
	Status    string `gorm:"size:20;not null;index" json:"status"`

	BuyerName  string `gorm:"size:120" json:"buyer_name"`
	BuyerEmail string `gorm:"size:255" json:"buyer_email"`
	BuyerPhone string `gorm:"size:20" json:"buyer_phone"`

	Currency            string  `gorm:"size:3;not null" json:"currency"`
	AmountSubtotalCents int64   `gorm:"not null" json:"amount_subtotal_cents"`
	AmountTotalCents    int64   `gorm:"not null" json:"amount_total_cents"`
	PlatformFeeCents    int64   `gorm:"not null" json:"platform_fee_cents"`
	CreatorNetCents     int64   `gorm:"not null" json:"creator_net_cents"`
	CommissionRate      float64 `gorm:"not null" json:"commission_rate"`

	GatewayOrderID    *string    `gorm:"size:128;index" json:"gateway_order_id"`
	GatewayPaymentRef *string    `gorm:"size:128" json:"gateway_payment_ref"`
	PaidAt            *time.Time `json:"paid_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Buyer   User        `gorm:"foreignKey:BuyerID" json:"-"`
	Creator User        `gorm:"foreignKey:CreatorID" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) IsPaid() bool { return o.Status == domain.OrderStatusPaid }

// OrderItem snapshots one purchased product line at checkout time.
type OrderItem struct {
	ID                  uint  `gorm:"primaryKey" json:"id"`
	OrderID             uint  `gorm:"not null;index" json:"order_id"`
	ProductID           uint  `gorm:"not null;index" json:"product_id"`
	Quantity            int   `gorm:"not null;default:1" json:"quantity"`
	UnitPriceCents      int64 `gorm:"not null" json:"unit_price_cents"`
	TotalCents          int64 `gorm:"not null" json:"total_cents"`
	ProductNameSnapshot string `gorm:"size:200;not null" json:"product_name_snapshot"`

	CreatedAt time.Time `json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
