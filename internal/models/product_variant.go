package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant is the sellable unit: one SKU with its own price and
// stock count. StockOnHand is only ever changed through guarded updates
// paired with a StockMovement row.
type ProductVariant struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                                        // primary key
	ProductID      uint           `gorm:"not null;index;uniqueIndex:idx_variant_sku" json:"product_id"`                // owning product
	SKU            string         `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:idx_variant_sku" json:"sku"` // SKU code, unique per product
	SpecValuesJSON JSON           `gorm:"type:json" json:"spec_values"`                                                // metal / size / gemstone attributes
	Price          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`                          // unit price
	StockOnHand    int            `gorm:"not null;default:0" json:"stock_on_hand"`                                     // physical stock, never below zero
	WeightGrams    int            `gorm:"not null;default:0" json:"weight_grams"`                                      // shipping weight
	IsActive       bool           `gorm:"default:true;index" json:"is_active"`                                         // purchasable or not
	SortOrder      int            `gorm:"default:0;index" json:"sort_order"`                                           // sort weight
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (ProductVariant) TableName() string {
	return "product_variants"
}
