package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart is the active cart for a user. One active cart per user; the row
// is deleted when checkout succeeds.
type Cart struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Cart) TableName() string {
	return "carts"
}
