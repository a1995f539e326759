package models

import (
	"time"
)

// StockMovement is the append-only stock ledger. One row per change to
// a variant's StockOnHand; rows are never updated or deleted, so the
// movement history for a variant always sums to its current stock.
type StockMovement struct {
	ID         uint      `gorm:"primarykey" json:"id"`                   // primary key
	VariantID  uint      `gorm:"index;not null" json:"variant_id"`       // variant moved
	Type       string    `gorm:"index;not null" json:"type"`             // sale / restock / adjustment / release
	Quantity   int       `gorm:"not null" json:"quantity"`               // signed delta, negative for sales
	StockAfter int       `gorm:"not null" json:"stock_after"`            // stock_on_hand after this movement
	OrderID    *uint     `gorm:"index" json:"order_id,omitempty"`        // originating order, when applicable
	Actor      string    `gorm:"type:varchar(20);not null" json:"actor"` // checkout / admin / system
	ActorID    uint      `gorm:"index;default:0" json:"actor_id"`        // user or admin id behind the change
	Note       string    `gorm:"type:text" json:"note,omitempty"`        // free-form reason
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (StockMovement) TableName() string {
	return "stock_movements"
}
