package service

import (
	"errors"
	"fmt"
)

// Service-level sentinel errors. Handlers map these onto response codes.
var (
	ErrCartNotFound            = errors.New("no active cart")
	ErrCartEmpty               = errors.New("cart is empty")
	ErrCartItemInvalid         = errors.New("invalid cart item")
	ErrProductNotFound         = errors.New("product not found")
	ErrProductUnavailable      = errors.New("product unavailable")
	ErrVariantNotFound         = errors.New("variant not found")
	ErrVariantUnavailable      = errors.New("variant unavailable")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderCreateFailed       = errors.New("order create failed")
	ErrOrderStateConflict      = errors.New("order state conflict")
	ErrPaymentNotFound         = errors.New("payment not found")
	ErrPaymentCreateFailed     = errors.New("payment create failed")
	ErrPaymentSignature        = errors.New("invalid payment signature")
	ErrPaymentPayloadInvalid   = errors.New("invalid payment payload")
	ErrPaymentProviderDisabled = errors.New("payment provider disabled")
	ErrPromotionNotFound       = errors.New("promotion not found")
	ErrPromotionInvalid        = errors.New("invalid promotion data")
	ErrPromotionNotActive      = errors.New("promotion not active")
	ErrPromotionMinAmount      = errors.New("order below promotion minimum")
	ErrPromotionExhausted      = errors.New("promotion exhausted")
	ErrAddressNotFound         = errors.New("address not found")
	ErrWishlistDuplicate       = errors.New("already in wishlist")
	ErrReviewNotFound          = errors.New("review not found")
	ErrReviewDuplicate         = errors.New("review already submitted")
	ErrReviewInvalidRating     = errors.New("rating out of range")
	ErrReviewNotPurchased      = errors.New("product not purchased")
	ErrShipmentNotFound        = errors.New("shipment not found")
	ErrShipmentInvalid         = errors.New("invalid shipment data")
	ErrShipmentExists          = errors.New("shipment already exists")
	ErrShippingUnavailable     = errors.New("shipping quote unavailable")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidStockOperation   = errors.New("invalid stock operation")
)

// InsufficientStockError reports which variant fell short at checkout.
// It matches ErrInsufficientStock via errors.Is so handler mapping
// tables keep working while the payload carries the detail.
type InsufficientStockError struct {
	VariantID uint
	SKU       string
	Requested int
	Available int
}

// Error implements the error interface.
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %d (%s): requested %d, available %d",
		e.VariantID, e.SKU, e.Requested, e.Available)
}

// Is makes errors.Is(err, ErrInsufficientStock) succeed.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
