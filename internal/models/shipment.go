package models

import (
	"time"

	"gorm.io/gorm"
)

// Shipment tracks the physical dispatch of a paid order.
type Shipment struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderID        uint           `gorm:"uniqueIndex;not null" json:"order_id"`
	Carrier        string         `gorm:"type:varchar(20);not null" json:"carrier"`
	Method         string         `gorm:"type:varchar(20);not null" json:"method"` // standard / express
	TrackingNumber string         `gorm:"index" json:"tracking_number"`
	Cost           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cost"`
	Status         string         `gorm:"index;not null" json:"status"`
	ShippedAt      *time.Time     `gorm:"index" json:"shipped_at"`
	DeliveredAt    *time.Time     `gorm:"index" json:"delivered_at"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Shipment) TableName() string {
	return "shipments"
}
