package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Cart{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewCartService(
		repository.NewCartRepository(db),
		repository.NewVariantRepository(db),
	)
	return svc, db
}

func seedCartVariant(t *testing.T, db *gorm.DB, sku string, active bool) models.ProductVariant {
	t.Helper()
	category := models.Category{Slug: "bracelets-" + sku, Name: "Bracelets", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID: category.ID,
		Slug:       "bracelet-" + sku,
		Name:       "Harbour Tennis Bracelet",
		BasePrice:  models.NewMoneyFromDecimal(decimal.RequireFromString("349.00")),
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variant := models.ProductVariant{
		ProductID:   product.ID,
		SKU:         sku,
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("349.00")),
		StockOnHand: 10,
		IsActive:    active,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	return variant
}

func TestCartAddItemReplacesQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	variant := seedCartVariant(t, db, "HTB-B-SS-17", true)

	cart, err := svc.AddItem(1, variant.ID, 2)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("cart after add wrong: %+v", cart.Items)
	}

	// Same variant again replaces, never duplicates the line.
	cart, err = svc.AddItem(1, variant.ID, 5)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 5 {
		t.Fatalf("cart after replace wrong: %+v", cart.Items)
	}
}

func TestCartAddItemValidation(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	inactive := seedCartVariant(t, db, "HTB-B-SS-19", false)

	if _, err := svc.AddItem(1, inactive.ID, 1); !errors.Is(err, ErrVariantUnavailable) {
		t.Fatalf("inactive variant should be rejected, got %v", err)
	}
	if _, err := svc.AddItem(1, 9999, 1); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("missing variant should be rejected, got %v", err)
	}
	if _, err := svc.AddItem(1, inactive.ID, 0); !errors.Is(err, ErrCartItemInvalid) {
		t.Fatalf("zero quantity should be rejected, got %v", err)
	}
}

func TestCartUpdateRemoveAndClear(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	first := seedCartVariant(t, db, "AUR-R-WG-6", true)
	second := seedCartVariant(t, db, "SCP-N-SS-45", true)

	if _, err := svc.AddItem(1, first.ID, 2); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	if _, err := svc.AddItem(1, second.ID, 1); err != nil {
		t.Fatalf("add second failed: %v", err)
	}

	// Zero quantity removes the line.
	cart, err := svc.UpdateItem(1, first.ID, 0)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].VariantID != second.ID {
		t.Fatalf("cart after zero update wrong: %+v", cart.Items)
	}

	cart, err = svc.RemoveItem(1, second.ID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("cart should be empty, got %+v", cart.Items)
	}

	if err := svc.Clear(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	// Clearing an already-empty cart is a no-op.
	if err := svc.Clear(1); err != nil {
		t.Fatalf("repeat clear failed: %v", err)
	}
}
