package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a registered customer or staff account.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	DisplayName  string         `gorm:"default:''" json:"display_name"`
	Phone        string         `gorm:"type:varchar(32)" json:"phone"`
	Role         string         `gorm:"default:'customer';index" json:"role"`
	Status       string         `gorm:"default:'active'" json:"status"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
