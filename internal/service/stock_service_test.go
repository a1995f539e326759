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

func setupStockServiceTest(t *testing.T) (*StockService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:stock_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
		&models.StockMovement{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewStockService(
		repository.NewVariantRepository(db),
		repository.NewStockMovementRepository(db),
	)
	return svc, db
}

func seedStockVariant(t *testing.T, db *gorm.DB, sku string, stock int) models.ProductVariant {
	t.Helper()
	category := models.Category{Slug: "earrings-" + sku, Name: "Earrings", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID: category.ID,
		Slug:       "earring-" + sku,
		Name:       "Opal Drop Earrings",
		BasePrice:  models.NewMoneyFromDecimal(decimal.RequireFromString("429.00")),
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variant := models.ProductVariant{
		ProductID:   product.ID,
		SKU:         sku,
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("429.00")),
		StockOnHand: stock,
		IsActive:    true,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	return variant
}

func TestRestockAppendsLedgerRow(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	variant := seedStockVariant(t, db, "OPL-E-RG", 0)

	updated, err := svc.Restock(variant.ID, 8, 42, "supplier delivery")
	if err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if updated.StockOnHand != 8 {
		t.Fatalf("stock want 8 got %d", updated.StockOnHand)
	}

	var movement models.StockMovement
	if err := db.Where("variant_id = ?", variant.ID).First(&movement).Error; err != nil {
		t.Fatalf("ledger row missing: %v", err)
	}
	if movement.Type != constants.StockMovementRestock || movement.Quantity != 8 || movement.StockAfter != 8 {
		t.Fatalf("ledger row wrong: %+v", movement)
	}
	if movement.Actor != constants.StockActorAdmin || movement.ActorID != 42 || movement.Note != "supplier delivery" {
		t.Fatalf("ledger attribution wrong: %+v", movement)
	}

	if _, err := svc.Restock(variant.ID, 0, 42, ""); !errors.Is(err, ErrInvalidStockOperation) {
		t.Fatalf("zero restock should be rejected, got %v", err)
	}
}

func TestAdjustRejectsUndersell(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	variant := seedStockVariant(t, db, "OPL-E-YG", 0)
	if _, err := svc.Restock(variant.ID, 3, 1, "initial count"); err != nil {
		t.Fatalf("restock failed: %v", err)
	}

	updated, err := svc.Adjust(variant.ID, -2, 1, "damaged pair")
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if updated.StockOnHand != 1 {
		t.Fatalf("stock want 1 got %d", updated.StockOnHand)
	}

	_, err = svc.Adjust(variant.ID, -5, 1, "bad count")
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Requested != 5 || stockErr.Available != 1 {
		t.Fatalf("shortfall detail wrong: %+v", stockErr)
	}

	// The failed adjustment must leave no ledger row behind.
	var count int64
	db.Model(&models.StockMovement{}).Where("variant_id = ?", variant.ID).Count(&count)
	if count != 2 {
		t.Fatalf("ledger rows want 2 got %d", count)
	}
}

func TestVerifyLedger(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	variant := seedStockVariant(t, db, "OPL-E-PT", 0)
	if _, err := svc.Restock(variant.ID, 6, 1, ""); err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if _, err := svc.Adjust(variant.ID, -1, 1, "display unit"); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}

	consistent, sum, onHand, err := svc.VerifyLedger(variant.ID)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !consistent || sum != 5 || onHand != 5 {
		t.Fatalf("ledger should balance: consistent=%v sum=%d on_hand=%d", consistent, sum, onHand)
	}

	// A write that bypasses the ledger shows up as a mismatch.
	if err := db.Model(&models.ProductVariant{}).Where("id = ?", variant.ID).
		Update("stock_on_hand", 9).Error; err != nil {
		t.Fatalf("raw update failed: %v", err)
	}
	consistent, sum, onHand, err = svc.VerifyLedger(variant.ID)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if consistent || sum != 5 || onHand != 9 {
		t.Fatalf("mismatch not detected: consistent=%v sum=%d on_hand=%d", consistent, sum, onHand)
	}
}
