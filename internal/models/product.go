package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry. Sellable stock lives on its variants.
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                    // primary key
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`                       // owning category
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                        // unique identifier used in URLs
	Name        string         `gorm:"not null" json:"name"`                                    // display name
	Description string         `gorm:"type:text" json:"description"`                            // short description
	Content     string         `gorm:"type:text" json:"content"`                                // long-form detail (markdown)
	SeoMetaJSON JSON           `gorm:"type:json" json:"seo_meta"`                               // SEO metadata
	Images      StringArray    `gorm:"type:json" json:"images"`                                 // image paths
	Tags        StringArray    `gorm:"type:json" json:"tags"`                                   // tag list
	BasePrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"base_price"` // display price; variants may override
	IsFeatured  bool           `gorm:"default:false;index" json:"is_featured"`                  // shown on the storefront home
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                     // listed or not
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                       // sort weight
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Category Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
