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

func setupPromotionServiceTest(t *testing.T) (*PromotionService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:promotion_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Promotion{}, &models.PromotionUsage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewPromotionService(repository.NewPromotionRepository(db)), db
}

func TestPromotionPreview(t *testing.T) {
	svc, db := setupPromotionServiceTest(t)
	promotion := models.Promotion{
		Name:      "Spend and Save",
		Code:      "SAVE25",
		Type:      constants.PromotionTypeFixed,
		Value:     models.NewMoneyFromDecimal(decimal.RequireFromString("25.00")),
		MinAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("100.00")),
		IsActive:  true,
	}
	if err := db.Create(&promotion).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	preview, err := svc.Preview("SAVE25", decimal.RequireFromString("150.00"))
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if got := preview.Discount.Decimal.StringFixed(2); got != "25.00" {
		t.Fatalf("discount want 25.00 got %s", got)
	}
	if got := preview.Total.Decimal.StringFixed(2); got != "125.00" {
		t.Fatalf("total want 125.00 got %s", got)
	}

	// Preview never consumes a use.
	var reloaded models.Promotion
	if err := db.First(&reloaded, promotion.ID).Error; err != nil {
		t.Fatalf("reload promotion failed: %v", err)
	}
	if reloaded.UsedCount != 0 {
		t.Fatalf("preview must not consume uses, used_count=%d", reloaded.UsedCount)
	}

	if _, err := svc.Preview("SAVE25", decimal.RequireFromString("50.00")); !errors.Is(err, ErrPromotionMinAmount) {
		t.Fatalf("below minimum should fail, got %v", err)
	}
	if _, err := svc.Preview("NOPE", decimal.RequireFromString("150.00")); !errors.Is(err, ErrPromotionNotFound) {
		t.Fatalf("unknown code should fail, got %v", err)
	}
}

func TestPromotionPreviewWindowAndUses(t *testing.T) {
	svc, db := setupPromotionServiceTest(t)
	past := time.Now().Add(-48 * time.Hour)
	earlier := time.Now().Add(-24 * time.Hour)
	expired := models.Promotion{
		Name:     "Ended",
		Code:     "ENDED",
		Type:     constants.PromotionTypePercent,
		Value:    models.NewMoneyFromDecimal(decimal.RequireFromString("10")),
		StartsAt: &past,
		EndsAt:   &earlier,
		IsActive: true,
	}
	spent := models.Promotion{
		Name:      "Spent",
		Code:      "SPENT",
		Type:      constants.PromotionTypePercent,
		Value:     models.NewMoneyFromDecimal(decimal.RequireFromString("10")),
		MaxUses:   2,
		UsedCount: 2,
		IsActive:  true,
	}
	if err := db.Create(&expired).Error; err != nil {
		t.Fatalf("create expired promotion failed: %v", err)
	}
	if err := db.Create(&spent).Error; err != nil {
		t.Fatalf("create spent promotion failed: %v", err)
	}

	if _, err := svc.Preview("ENDED", decimal.RequireFromString("100.00")); !errors.Is(err, ErrPromotionNotActive) {
		t.Fatalf("expired code should fail, got %v", err)
	}
	if _, err := svc.Preview("SPENT", decimal.RequireFromString("100.00")); !errors.Is(err, ErrPromotionExhausted) {
		t.Fatalf("spent code should fail, got %v", err)
	}
}

func TestPromotionCreateValidatesType(t *testing.T) {
	svc, _ := setupPromotionServiceTest(t)
	bad := &models.Promotion{
		Name:  "Broken",
		Code:  "BROKEN",
		Type:  "bogus",
		Value: models.NewMoneyFromDecimal(decimal.RequireFromString("5.00")),
	}
	if err := svc.Create(bad); !errors.Is(err, ErrPromotionInvalid) {
		t.Fatalf("unknown type should be rejected, got %v", err)
	}
}
