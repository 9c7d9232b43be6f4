package models

import (
	"time"

	"creatorkart/internal/domain"

	"gorm.io/gorm"
)

// PayoutRequest is a creator's ask to withdraw funds. The requested amount
// is removed from the wallet's available balance immediately (earmarked for
// operator settlement), and restored if the payout later fails. Linked 1:1
// with a DEBIT_PAYOUT wallet transaction.
type PayoutRequest struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Reference   string `gorm:"uniqueIndex;size:64;not null" json:"reference"`
	CreatorID   uint   `gorm:"not null;index" json:"creator_id"`
	WalletID    uint   `gorm:"not null;index" json:"wallet_id"`
	AmountCents int64  `gorm:"not null" json:"amount_cents"`
	Currency    string `gorm:"size:3;not null" json:"currency"`
	Status      string `gorm:"size:20;not null;index" json:"status"`
	Note        string `gorm:"size:255" json:"note"`

	SettledAt *time.Time     `json:"settled_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Creator User   `gorm:"foreignKey:CreatorID" json:"-"`
	Wallet  Wallet `gorm:"foreignKey:WalletID" json:"-"`
}

func (PayoutRequest) TableName() string {
	return "payout_requests"
}

// Settled reports whether the payout has reached a terminal status.
func (p *PayoutRequest) Settled() bool {
	return p.Status == domain.PayoutStatusCompleted ||
		p.Status == domain.PayoutStatusFailed ||
		p.Status == domain.PayoutStatusRejected
}
