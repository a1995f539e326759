package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCheckoutServiceTest(t *testing.T) (*CheckoutService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:checkout_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.StockMovement{},
		&models.Promotion{},
		&models.PromotionUsage{},
		&models.Shipment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewCheckoutService(
		repository.NewCartRepository(db),
		repository.NewOrderRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewVariantRepository(db),
		repository.NewStockMovementRepository(db),
		repository.NewPromotionRepository(db),
		repository.NewAddressRepository(db),
		nil,
		15,
	)
	return svc, db
}

func seedCheckoutUser(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	user := models.User{
		ID:           id,
		Email:        fmt.Sprintf("checkout_user_%d@example.com", id),
		PasswordHash: "hash",
		Role:         constants.UserRoleCustomer,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func seedCheckoutVariant(t *testing.T, db *gorm.DB, sku, price string, stock int) models.ProductVariant {
	t.Helper()
	category := models.Category{Slug: "rings-" + sku, Name: "Rings", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID: category.ID,
		Slug:       "ring-" + sku,
		Name:       "Aurora Solitaire Ring",
		BasePrice:  models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variant := models.ProductVariant{
		ProductID:   product.ID,
		SKU:         sku,
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		StockOnHand: stock,
		WeightGrams: 4,
		IsActive:    true,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	return variant
}

func seedCheckoutCart(t *testing.T, db *gorm.DB, userID uint, lines map[uint]int) models.Cart {
	t.Helper()
	cart := models.Cart{UserID: userID}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	for variantID, qty := range lines {
		item := models.CartItem{CartID: cart.ID, VariantID: variantID, Quantity: qty}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("create cart item failed: %v", err)
		}
	}
	return cart
}

func variantStock(t *testing.T, db *gorm.DB, variantID uint) int {
	t.Helper()
	var variant models.ProductVariant
	if err := db.First(&variant, variantID).Error; err != nil {
		t.Fatalf("load variant failed: %v", err)
	}
	return variant.StockOnHand
}

func TestPlaceOrderCreatesOrderPaymentAndLedger(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	seedCheckoutUser(t, db, 1)
	variant := seedCheckoutVariant(t, db, "AUR-R-WG-6", "1299.00", 5)
	seedCheckoutCart(t, db, 1, map[uint]int{variant.ID: 2})

	result, err := svc.PlaceOrder(CheckoutInput{UserID: 1, ShippingMethod: constants.ShippingMethodStandard})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if result.Order == nil || result.Payment == nil {
		t.Fatalf("expected order and payment, got %+v", result)
	}
	if result.Order.Status != constants.OrderStatusPending {
		t.Fatalf("order status want pending got %s", result.Order.Status)
	}
	if result.Order.OrderNo == "" || result.Order.ExpiresAt == nil {
		t.Fatalf("order number and expiry must be set: %+v", result.Order)
	}
	wantTotal := "2598.00"
	if got := result.Order.TotalAmount.Decimal.StringFixed(2); got != wantTotal {
		t.Fatalf("total want %s got %s", wantTotal, got)
	}
	if got := result.Payment.Amount.Decimal.StringFixed(2); got != wantTotal {
		t.Fatalf("payment amount want %s got %s", wantTotal, got)
	}
	if result.Payment.Status != constants.PaymentStatusPending {
		t.Fatalf("payment status want pending got %s", result.Payment.Status)
	}
	if len(result.Order.Items) != 1 {
		t.Fatalf("order items want 1 got %d", len(result.Order.Items))
	}
	line := result.Order.Items[0]
	if line.SKU != variant.SKU || line.Quantity != 2 {
		t.Fatalf("line snapshot wrong: %+v", line)
	}
	if got := line.TotalPrice.Decimal.StringFixed(2); got != wantTotal {
		t.Fatalf("line total want %s got %s", wantTotal, got)
	}

	if got := variantStock(t, db, variant.ID); got != 3 {
		t.Fatalf("stock after checkout want 3 got %d", got)
	}

	var movements []models.StockMovement
	if err := db.Where("variant_id = ?", variant.ID).Find(&movements).Error; err != nil {
		t.Fatalf("load movements failed: %v", err)
	}
	if len(movements) != 1 {
		t.Fatalf("ledger rows want 1 got %d", len(movements))
	}
	mv := movements[0]
	if mv.Type != constants.StockMovementSale || mv.Quantity != -2 || mv.StockAfter != 3 {
		t.Fatalf("ledger row wrong: %+v", mv)
	}
	if mv.OrderID == nil || *mv.OrderID != result.Order.ID {
		t.Fatalf("ledger row must reference the order: %+v", mv)
	}

	var cartCount int64
	if err := db.Model(&models.Cart{}).Where("user_id = ?", 1).Count(&cartCount).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("cart should be cleared after checkout, found %d", cartCount)
	}
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	seedCheckoutUser(t, db, 1)
	plenty := seedCheckoutVariant(t, db, "SCP-N-SS-45", "189.00", 10)
	scarce := seedCheckoutVariant(t, db, "OPL-E-RG", "429.00", 1)
	seedCheckoutCart(t, db, 1, map[uint]int{plenty.ID: 1, scarce.ID: 3})

	_, err := svc.PlaceOrder(CheckoutInput{UserID: 1})
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.VariantID != scarce.ID || stockErr.Requested != 3 || stockErr.Available != 1 {
		t.Fatalf("shortfall detail wrong: %+v", stockErr)
	}

	// Everything rolls back: no order, no payment, no ledger rows, both
	// stock counts untouched, cart still present.
	var orderCount, paymentCount, movementCount, cartCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.Payment{}).Count(&paymentCount)
	db.Model(&models.StockMovement{}).Count(&movementCount)
	db.Model(&models.Cart{}).Where("user_id = ?", 1).Count(&cartCount)
	if orderCount != 0 || paymentCount != 0 || movementCount != 0 {
		t.Fatalf("rollback leaked rows: orders=%d payments=%d movements=%d", orderCount, paymentCount, movementCount)
	}
	if cartCount != 1 {
		t.Fatalf("cart must survive a failed checkout, found %d", cartCount)
	}
	if got := variantStock(t, db, plenty.ID); got != 10 {
		t.Fatalf("stock for first line want 10 got %d", got)
	}
	if got := variantStock(t, db, scarce.ID); got != 1 {
		t.Fatalf("stock for short line want 1 got %d", got)
	}
}

func TestPlaceOrderAppliesPromotion(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	seedCheckoutUser(t, db, 1)
	variant := seedCheckoutVariant(t, db, "HTB-B-SS-17", "100.00", 5)
	seedCheckoutCart(t, db, 1, map[uint]int{variant.ID: 2})

	promotion := models.Promotion{
		Name:     "Launch Sale",
		Code:     "LAUNCH10",
		Type:     constants.PromotionTypePercent,
		Value:    models.NewMoneyFromDecimal(decimal.RequireFromString("10")),
		MaxUses:  5,
		IsActive: true,
	}
	if err := db.Create(&promotion).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	result, err := svc.PlaceOrder(CheckoutInput{UserID: 1, PromotionCode: "LAUNCH10"})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if got := result.Order.OriginalAmount.Decimal.StringFixed(2); got != "200.00" {
		t.Fatalf("subtotal want 200.00 got %s", got)
	}
	if got := result.Order.DiscountAmount.Decimal.StringFixed(2); got != "20.00" {
		t.Fatalf("discount want 20.00 got %s", got)
	}
	if got := result.Order.TotalAmount.Decimal.StringFixed(2); got != "180.00" {
		t.Fatalf("total want 180.00 got %s", got)
	}
	if result.Order.PromotionID == nil || *result.Order.PromotionID != promotion.ID {
		t.Fatalf("order must reference the promotion: %+v", result.Order)
	}

	// The discount lives on the order; line snapshots keep the catalog
	// price the customer saw.
	var items []models.OrderItem
	if err := db.Where("order_id = ?", result.Order.ID).Find(&items).Error; err != nil {
		t.Fatalf("load order items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("order items want 1 got %d", len(items))
	}
	if got := items[0].UnitPrice.Decimal.StringFixed(2); got != "100.00" {
		t.Fatalf("unit price want undiscounted 100.00 got %s", got)
	}

	var usage models.PromotionUsage
	if err := db.Where("promotion_id = ? AND user_id = ?", promotion.ID, 1).First(&usage).Error; err != nil {
		t.Fatalf("usage row missing: %v", err)
	}
	if got := usage.Discount.Decimal.StringFixed(2); got != "20.00" {
		t.Fatalf("usage discount want 20.00 got %s", got)
	}
	var reloaded models.Promotion
	if err := db.First(&reloaded, promotion.ID).Error; err != nil {
		t.Fatalf("reload promotion failed: %v", err)
	}
	if reloaded.UsedCount != 1 {
		t.Fatalf("used_count want 1 got %d", reloaded.UsedCount)
	}
}

func TestPlaceOrderPromotionExhaustedRollsBack(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	seedCheckoutUser(t, db, 1)
	variant := seedCheckoutVariant(t, db, "HTB-B-SS-19", "349.00", 5)
	seedCheckoutCart(t, db, 1, map[uint]int{variant.ID: 1})

	promotion := models.Promotion{
		Name:      "Single Use",
		Code:      "ONCE",
		Type:      constants.PromotionTypeFixed,
		Value:     models.NewMoneyFromDecimal(decimal.RequireFromString("50.00")),
		MaxUses:   1,
		UsedCount: 1,
		IsActive:  true,
	}
	if err := db.Create(&promotion).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	_, err := svc.PlaceOrder(CheckoutInput{UserID: 1, PromotionCode: "ONCE"})
	if !errors.Is(err, ErrPromotionExhausted) {
		t.Fatalf("expected ErrPromotionExhausted, got %v", err)
	}
	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	if orderCount != 0 {
		t.Fatalf("no order should exist after exhausted promotion, found %d", orderCount)
	}
	if got := variantStock(t, db, variant.ID); got != 5 {
		t.Fatalf("stock want 5 got %d", got)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	seedCheckoutUser(t, db, 1)
	seedCheckoutCart(t, db, 1, nil)

	_, err := svc.PlaceOrder(CheckoutInput{UserID: 1})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestPlaceOrderWithAddressSnapshot(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	seedCheckoutUser(t, db, 1)
	variant := seedCheckoutVariant(t, db, "AUR-R-YG-6", "1299.00", 3)
	seedCheckoutCart(t, db, 1, map[uint]int{variant.ID: 1})

	address := models.Address{
		UserID:    1,
		Recipient: "Amelia Hart",
		Phone:     "0400000000",
		Line1:     "12 George St",
		Suburb:    "Sydney",
		State:     "NSW",
		Postcode:  "2000",
		Country:   "AU",
	}
	if err := db.Create(&address).Error; err != nil {
		t.Fatalf("create address failed: %v", err)
	}

	result, err := svc.PlaceOrder(CheckoutInput{UserID: 1, AddressID: address.ID})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	snapshot := result.Order.ShippingAddress
	if snapshot == nil {
		t.Fatalf("address snapshot missing")
	}
	if snapshot["recipient"] != "Amelia Hart" || snapshot["postcode"] != "2000" {
		t.Fatalf("snapshot content wrong: %+v", snapshot)
	}

	// Checkout with someone else's address must leave nothing behind.
	seedCheckoutUser(t, db, 2)
	seedCheckoutCart(t, db, 2, map[uint]int{variant.ID: 1})
	_, err = svc.PlaceOrder(CheckoutInput{UserID: 2, AddressID: address.ID})
	if !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestPromotionDiscountClamping(t *testing.T) {
	subtotal := decimal.RequireFromString("80.00")
	fixed := &models.Promotion{Type: constants.PromotionTypeFixed, Value: models.NewMoneyFromDecimal(decimal.RequireFromString("100.00"))}
	if got := promotionDiscount(fixed, subtotal); !got.Equal(subtotal) {
		t.Fatalf("fixed discount should clamp to subtotal, got %s", got)
	}
	special := &models.Promotion{Type: constants.PromotionTypeSpecialPrice, Value: models.NewMoneyFromDecimal(decimal.RequireFromString("60.00"))}
	if got := promotionDiscount(special, subtotal); got.StringFixed(2) != "20.00" {
		t.Fatalf("special price discount want 20.00 got %s", got)
	}
	overpriced := &models.Promotion{Type: constants.PromotionTypeSpecialPrice, Value: models.NewMoneyFromDecimal(decimal.RequireFromString("90.00"))}
	if got := promotionDiscount(overpriced, subtotal); !got.IsZero() {
		t.Fatalf("special price above subtotal should discount nothing, got %s", got)
	}
}

func TestPlaceOrderWithoutCartRow(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	seedCheckoutUser(t, db, 1)

	_, err := svc.PlaceOrder(CheckoutInput{UserID: 1})
	if !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}

	var orders int64
	if err := db.Model(&models.Order{}).Count(&orders).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orders != 0 {
		t.Fatalf("orders want 0 got %d", orders)
	}
}

func TestPlaceOrderConsumesCartExactlyOnce(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	seedCheckoutUser(t, db, 1)
	variant := seedCheckoutVariant(t, db, "AUR-R-RG-6", "1299.00", 5)
	cart := seedCheckoutCart(t, db, 1, map[uint]int{variant.ID: 1})

	if _, err := svc.PlaceOrder(CheckoutInput{UserID: 1}); err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}

	// The committed checkout took the cart with it; a replayed request
	// must not mint a second order.
	_, err := svc.PlaceOrder(CheckoutInput{UserID: 1})
	if !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound on replay, got %v", err)
	}

	var orders int64
	if err := db.Model(&models.Order{}).Count(&orders).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orders != 1 {
		t.Fatalf("orders want 1 got %d", orders)
	}
	if got := variantStock(t, db, variant.ID); got != 4 {
		t.Fatalf("stock want 4 got %d", got)
	}

	// The guarded delete reports zero rows for a cart that is gone,
	// which is what aborts the losing transaction.
	deleted, err := repository.NewCartRepository(db).DeleteCart(cart.ID)
	if err != nil {
		t.Fatalf("delete consumed cart failed: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("deleted rows want 0 got %d", deleted)
	}
}
