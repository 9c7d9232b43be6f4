package models

import (
	"time"
)

// WalletTransaction is one append-only ledger movement. Amounts are signed:
// positive for credits, negative for debits, and are never edited after
// creation. The only in-place update is a payout debit's status transition
// (PENDING -> COMPLETED/FAILED).
//
// The unique index on (wallet_id, order_id, kind) backs the idempotency
// guard for sale credits at the database level.
type WalletTransaction struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	WalletID        uint   `gorm:"not null;index;uniqueIndex:idx_wallet_order_kind" json:"wallet_id"`
	OrderID         *uint  `gorm:"index;uniqueIndex:idx_wallet_order_kind" json:"order_id"`
	PayoutRequestID *uint  `gorm:"index" json:"payout_request_id"`
	Kind            string `gorm:"size:20;not null;index;uniqueIndex:idx_wallet_order_kind" json:"kind"`
	Status          string `gorm:"size:20;not null;index" json:"status"`
	AmountCents     int64  `gorm:"not null" json:"amount_cents"`
	Description     string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Wallet Wallet `gorm:"foreignKey:WalletID" json:"-"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
