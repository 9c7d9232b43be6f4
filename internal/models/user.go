package models

import (
	"time"

	"creatorkart/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:120" json:"name"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Phone        string         `gorm:"size:20" json:"phone"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // BUYER | CREATOR | ADMIN
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	CreatorProfile *CreatorProfile `gorm:"foreignKey:UserID" json:"creator_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsCreator() bool { return u.Role == domain.RoleCreator }
func (u *User) IsBuyer() bool   { return u.Role == domain.RoleBuyer }

// ProfileComplete reports whether the user has the contact details checkout
// snapshots onto an order.
func (u *User) ProfileComplete() bool {
	return u.Name != "" && u.Email != "" && u.Phone != ""
}
