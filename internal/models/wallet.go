package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds one creator's balances. Balances are mutated only by ledger
// operations, inside a transaction that also appends the matching
// WalletTransaction; no handler writes these fields directly.
type Wallet struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CreatorID uint   `gorm:"uniqueIndex;not null" json:"creator_id"`
	Currency  string `gorm:"size:3;not null;default:'INR'" json:"currency"`

	AvailableBalanceCents int64 `gorm:"not null;default:0" json:"available_balance_cents"`
	PendingBalanceCents   int64 `gorm:"not null;default:0" json:"pending_balance_cents"`
	TotalPaidOutCents     int64 `gorm:"not null;default:0" json:"total_paid_out_cents"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Creator User `gorm:"foreignKey:CreatorID" json:"-"`
}

func (Wallet) TableName() string {
	return "wallets"
}
