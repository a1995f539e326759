package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is the order header. Line detail lives in OrderItem; money
// columns are immutable snapshots taken at checkout time.
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                                // primary key
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                                // public order number
	UserID          uint           `gorm:"index;not null" json:"user_id"`                                       // owning user
	Status          string         `gorm:"index;not null" json:"status"`                                        // order status
	Currency        string         `gorm:"not null" json:"currency"`                                            // currency code
	OriginalAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"original_amount"`        // sum of line totals before discounts
	DiscountAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`        // promotion discount applied
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`           // amount payable
	PromotionID     *uint          `gorm:"index" json:"promotion_id,omitempty"`                                 // applied promotion, if any
	ShippingMethod  string         `gorm:"type:varchar(20);not null;default:'standard'" json:"shipping_method"` // standard / express
	ShippingAddress JSON           `gorm:"type:json" json:"shipping_address"`                                   // address snapshot
	ClientIP        string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                         // checkout client IP
	ExpiresAt       *time.Time     `gorm:"index" json:"expires_at"`                                             // payment deadline
	PaidAt          *time.Time     `gorm:"index" json:"paid_at"`                                                // payment time
	ShippedAt       *time.Time     `gorm:"index" json:"shipped_at"`                                             // dispatch time
	DeliveredAt     *time.Time     `gorm:"index" json:"delivered_at"`                                           // delivery time
	CanceledAt      *time.Time     `gorm:"index" json:"canceled_at"`                                            // cancellation time
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Shipment *Shipment   `gorm:"foreignKey:OrderID" json:"shipment,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
