package models

import (
	"time"

	"gorm.io/gorm"
)

// Address is a saved shipping address.
type Address struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Recipient string         `gorm:"not null" json:"recipient"`
	Phone     string         `gorm:"type:varchar(32)" json:"phone"`
	Line1     string         `gorm:"not null" json:"line1"`
	Line2     string         `gorm:"default:''" json:"line2"`
	Suburb    string         `gorm:"not null" json:"suburb"`
	State     string         `gorm:"type:varchar(10);not null" json:"state"`
	Postcode  string         `gorm:"type:varchar(10);not null;index" json:"postcode"`
	Country   string         `gorm:"type:varchar(2);not null;default:'AU'" json:"country"`
	IsDefault bool           `gorm:"default:false" json:"is_default"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Address) TableName() string {
	return "addresses"
}
