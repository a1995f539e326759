package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is one variant line inside a cart.
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CartID    uint           `gorm:"not null;uniqueIndex:idx_cart_variant" json:"cart_id"`
	VariantID uint           `gorm:"not null;uniqueIndex:idx_cart_variant" json:"variant_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
