package repository

import "time"

// ProductListFilter filters product list queries.
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	Tag          string
	OnlyActive   bool
	OnlyFeatured bool
	WithCategory bool
	WithVariants bool
	OrderBy      string
}

// OrderListFilter filters order list queries.
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// StockMovementListFilter filters ledger queries.
type StockMovementListFilter struct {
	Page        int
	PageSize    int
	VariantID   uint
	OrderID     uint
	Type        string
	Actor       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ReviewListFilter filters review list queries.
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	UserID    uint
	Status    string
	MinRating int
}

// PaymentListFilter filters payment list queries.
type PaymentListFilter struct {
	Page        int
	PageSize    int
	OrderID     uint
	Provider    string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
