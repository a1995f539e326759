package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a customer product review. One review per user per product,
// published only after moderation.
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"not null;uniqueIndex:idx_review_product_user" json:"product_id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_review_product_user" json:"user_id"`
	Rating    int            `gorm:"not null" json:"rating"` // 1..5
	Title     string         `gorm:"default:''" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	Status    string         `gorm:"index;not null;default:'pending'" json:"status"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Review) TableName() string {
	return "reviews"
}
