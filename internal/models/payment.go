package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment is one payment attempt against an order.
type Payment struct {
	ID              uint           `gorm:"primarykey" json:"id"`                      // primary key
	OrderID         uint           `gorm:"index;not null" json:"order_id"`            // owning order
	Provider        string         `gorm:"not null" json:"provider"`                  // payment provider (stripe)
	Amount          Money          `gorm:"type:decimal(20,2);not null" json:"amount"` // charged amount
	Currency        string         `gorm:"not null" json:"currency"`                  // currency code
	Status          string         `gorm:"index;not null" json:"status"`              // payment status
	ProviderRef     string         `gorm:"index" json:"provider_ref"`                 // provider transaction id
	ProviderPayload JSON           `gorm:"type:json" json:"provider_payload"`         // raw provider callback
	CheckoutURL     string         `gorm:"type:text" json:"checkout_url"`             // hosted checkout redirect
	FailureReason   string         `gorm:"type:text" json:"failure_reason,omitempty"` // provider failure detail
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`
	PaidAt          *time.Time     `gorm:"index" json:"paid_at"`
	CallbackAt      *time.Time     `gorm:"index" json:"callback_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Payment) TableName() string {
	return "payments"
}
