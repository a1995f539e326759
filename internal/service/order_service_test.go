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

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.StockMovement{},
		&models.Shipment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewVariantRepository(db),
		repository.NewStockMovementRepository(db),
		nil,
	)
	return svc, db
}

// seedPendingOrder creates a pending order whose stock has already been
// decremented, the state checkout leaves behind.
func seedPendingOrder(t *testing.T, db *gorm.DB, userID uint, qty int, expiresAt *time.Time) (models.Order, models.ProductVariant) {
	t.Helper()
	category := models.Category{Slug: fmt.Sprintf("cat-%d-%d", userID, qty), Name: "Necklaces", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID: category.ID,
		Slug:       fmt.Sprintf("pendant-%d-%d", userID, qty),
		Name:       "Southern Cross Pendant",
		BasePrice:  models.NewMoneyFromDecimal(decimal.RequireFromString("189.00")),
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variant := models.ProductVariant{
		ProductID:   product.ID,
		SKU:         fmt.Sprintf("SCP-%d-%d", userID, qty),
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("189.00")),
		StockOnHand: 10 - qty,
		IsActive:    true,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}

	total := decimal.RequireFromString("189.00").Mul(decimal.NewFromInt(int64(qty)))
	order := models.Order{
		OrderNo:        fmt.Sprintf("JS2026010112000000%d%d", userID, qty),
		UserID:         userID,
		Status:         constants.OrderStatusPending,
		Currency:       constants.SiteCurrencyDefault,
		OriginalAmount: models.NewMoneyFromDecimal(total),
		TotalAmount:    models.NewMoneyFromDecimal(total),
		ShippingMethod: constants.ShippingMethodStandard,
		ExpiresAt:      expiresAt,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	item := models.OrderItem{
		OrderID:    order.ID,
		ProductID:  product.ID,
		VariantID:  variant.ID,
		SKU:        variant.SKU,
		UnitPrice:  variant.Price,
		Quantity:   qty,
		TotalPrice: models.NewMoneyFromDecimal(total),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}
	return order, variant
}

func TestCancelOrderReleasesStock(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order, variant := seedPendingOrder(t, db, 1, 2, nil)

	cancelled, err := svc.CancelOrder(order.ID, 1)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want cancelled got %s", cancelled.Status)
	}
	if cancelled.CanceledAt == nil {
		t.Fatalf("canceled_at must be set")
	}

	var reloaded models.ProductVariant
	if err := db.First(&reloaded, variant.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if reloaded.StockOnHand != 10 {
		t.Fatalf("stock after release want 10 got %d", reloaded.StockOnHand)
	}

	var movement models.StockMovement
	if err := db.Where("variant_id = ? AND type = ?", variant.ID, constants.StockMovementRelease).First(&movement).Error; err != nil {
		t.Fatalf("release ledger row missing: %v", err)
	}
	if movement.Quantity != 2 || movement.StockAfter != 10 {
		t.Fatalf("release row wrong: %+v", movement)
	}
	if movement.OrderID == nil || *movement.OrderID != order.ID {
		t.Fatalf("release row must reference the order: %+v", movement)
	}
}

func TestCancelOrderRejectsOtherStates(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order, _ := seedPendingOrder(t, db, 1, 1, nil)
	now := time.Now()
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{"status": constants.OrderStatusPaid, "paid_at": &now}).Error; err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	_, err := svc.CancelOrder(order.ID, 1)
	if !errors.Is(err, ErrOrderStateConflict) {
		t.Fatalf("expected ErrOrderStateConflict, got %v", err)
	}

	// Another user never sees the order at all.
	_, err = svc.CancelOrder(order.ID, 2)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestCancelOrderForAdminCancelsPaidOrder(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order, variant := seedPendingOrder(t, db, 1, 3, nil)
	now := time.Now()
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{"status": constants.OrderStatusPaid, "paid_at": &now}).Error; err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	cancelled, err := svc.CancelOrderForAdmin(order.ID, 99)
	if err != nil {
		t.Fatalf("admin cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want cancelled got %s", cancelled.Status)
	}

	var reloaded models.ProductVariant
	if err := db.First(&reloaded, variant.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if reloaded.StockOnHand != 10 {
		t.Fatalf("stock after admin cancel want 10 got %d", reloaded.StockOnHand)
	}

	var movement models.StockMovement
	if err := db.Where("order_id = ?", order.ID).First(&movement).Error; err != nil {
		t.Fatalf("release ledger row missing: %v", err)
	}
	if movement.Actor != constants.StockActorAdmin || movement.ActorID != 99 {
		t.Fatalf("release actor wrong: %+v", movement)
	}
}

func TestCancelExpiredOrder(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	past := time.Now().Add(-time.Minute)
	expired, expiredVariant := seedPendingOrder(t, db, 1, 1, &past)

	future := time.Now().Add(30 * time.Minute)
	fresh, _ := seedPendingOrder(t, db, 2, 1, &future)

	cancelled, err := svc.CancelExpiredOrder(expired.ID)
	if err != nil {
		t.Fatalf("expire cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expired order status want cancelled got %s", cancelled.Status)
	}
	var reloaded models.ProductVariant
	if err := db.First(&reloaded, expiredVariant.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if reloaded.StockOnHand != 10 {
		t.Fatalf("stock after expiry want 10 got %d", reloaded.StockOnHand)
	}

	// An order still inside its window is left alone.
	untouched, err := svc.CancelExpiredOrder(fresh.ID)
	if err != nil {
		t.Fatalf("fresh order check failed: %v", err)
	}
	if untouched.Status != constants.OrderStatusPending {
		t.Fatalf("fresh order status want pending got %s", untouched.Status)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusPaid, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPaid, constants.OrderStatusShipped, true},
		{constants.OrderStatusPaid, constants.OrderStatusDisputed, true},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusCancelled, constants.OrderStatusPaid, false},
		{constants.OrderStatusDelivered, constants.OrderStatusPending, false},
		{constants.OrderStatusPending, constants.OrderStatusShipped, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) want %v got %v", tc.from, tc.to, tc.want, got)
		}
	}
}
