package models

import (
	"time"

	"gorm.io/gorm"
)

// Promotion is a discount rule applied at checkout.
type Promotion struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                    // primary key
	Name      string         `gorm:"not null" json:"name"`                                    // display name
	Code      string         `gorm:"uniqueIndex;not null" json:"code"`                        // code entered at checkout
	Type      string         `gorm:"not null" json:"type"`                                    // fixed / percent / special_price
	Value     Money          `gorm:"type:decimal(20,2);not null" json:"value"`                // amount, percentage or fixed price
	MinAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_amount"` // minimum order subtotal
	MaxUses   int            `gorm:"not null;default:0" json:"max_uses"`                      // 0 means unlimited
	UsedCount int            `gorm:"not null;default:0" json:"used_count"`                    // redemption count
	StartsAt  *time.Time     `gorm:"index" json:"starts_at"`                                  // active window start
	EndsAt    *time.Time     `gorm:"index" json:"ends_at"`                                    // active window end
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`                  // enabled flag
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Promotion) TableName() string {
	return "promotions"
}

// PromotionUsage records one redemption of a promotion.
type PromotionUsage struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	PromotionID uint      `gorm:"index;not null" json:"promotion_id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	OrderID     uint      `gorm:"index;not null" json:"order_id"`
	Discount    Money     `gorm:"type:decimal(20,2);not null" json:"discount"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (PromotionUsage) TableName() string {
	return "promotion_usages"
}
