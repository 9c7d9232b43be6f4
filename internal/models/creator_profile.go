package models

import (
	"time"

	"gorm.io/gorm"
)

// CreatorProfile carries the public storefront identity and the payout
// destination details that gate withdrawal requests.
type CreatorProfile struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	DisplayName string         `gorm:"size:120;not null" json:"display_name"`
	Slug        string         `gorm:"uniqueIndex;size:64;not null" json:"slug"`
	Bio         string         `gorm:"size:1024" json:"bio"`

	PayoutBankName         string `gorm:"size:120" json:"payout_bank_name"`
	PayoutBankAccountLast4 string `gorm:"size:4" json:"payout_bank_account_last4"`
	PayoutBankIFSC         string `gorm:"size:16" json:"payout_bank_ifsc"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (CreatorProfile) TableName() string {
	return "creator_profiles"
}

// HasPayoutDestination reports whether payout requests may be accepted.
func (p *CreatorProfile) HasPayoutDestination() bool {
	return p.PayoutBankName != "" && p.PayoutBankAccountLast4 != ""
}
