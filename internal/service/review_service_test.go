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

func setupReviewServiceTest(t *testing.T) (*ReviewService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:review_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewProductRepository(db),
		repository.NewOrderRepository(db),
	)
	return svc, db
}

func seedReviewProduct(t *testing.T, db *gorm.DB, slug string) models.Product {
	t.Helper()
	category := models.Category{Slug: "cat-" + slug, Name: "Rings", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID: category.ID,
		Slug:       slug,
		Name:       "Aurora Solitaire Ring",
		BasePrice:  models.NewMoneyFromDecimal(decimal.RequireFromString("1299.00")),
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func seedDeliveredOrder(t *testing.T, db *gorm.DB, userID, productID uint) {
	t.Helper()
	now := time.Now()
	order := models.Order{
		OrderNo:     fmt.Sprintf("JS2026010109000000%d%d", userID, productID),
		UserID:      userID,
		Status:      constants.OrderStatusDelivered,
		Currency:    constants.SiteCurrencyDefault,
		TotalAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("1299.00")),
		DeliveredAt: &now,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	item := models.OrderItem{
		OrderID:    order.ID,
		ProductID:  productID,
		VariantID:  1,
		SKU:        "AUR-R-WG-6",
		Quantity:   1,
		UnitPrice:  models.NewMoneyFromDecimal(decimal.RequireFromString("1299.00")),
		TotalPrice: models.NewMoneyFromDecimal(decimal.RequireFromString("1299.00")),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}
}

func TestSubmitReviewRequiresDeliveredPurchase(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := seedReviewProduct(t, db, "aurora-solitaire-ring")

	if _, err := svc.Submit(1, product.ID, 5, "Stunning", "Exactly as pictured."); !errors.Is(err, ErrReviewNotPurchased) {
		t.Fatalf("review without purchase should fail, got %v", err)
	}

	seedDeliveredOrder(t, db, 1, product.ID)
	review, err := svc.Submit(1, product.ID, 5, "Stunning", "Exactly as pictured.")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if review.Status != constants.ReviewStatusPending {
		t.Fatalf("new review status want pending got %s", review.Status)
	}

	// One review per user per product.
	if _, err := svc.Submit(1, product.ID, 4, "Again", "Second attempt."); !errors.Is(err, ErrReviewDuplicate) {
		t.Fatalf("duplicate review should fail, got %v", err)
	}
}

func TestSubmitReviewValidation(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := seedReviewProduct(t, db, "opal-drop-earrings")
	seedDeliveredOrder(t, db, 1, product.ID)

	if _, err := svc.Submit(1, product.ID, 0, "", ""); !errors.Is(err, ErrReviewInvalidRating) {
		t.Fatalf("rating 0 should fail, got %v", err)
	}
	if _, err := svc.Submit(1, product.ID, 6, "", ""); !errors.Is(err, ErrReviewInvalidRating) {
		t.Fatalf("rating 6 should fail, got %v", err)
	}
	if _, err := svc.Submit(1, 9999, 5, "", ""); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product should fail, got %v", err)
	}
}

func TestModerateReviewControlsVisibility(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := seedReviewProduct(t, db, "southern-cross-pendant")
	seedDeliveredOrder(t, db, 1, product.ID)

	review, err := svc.Submit(1, product.ID, 4, "Lovely", "Great weight to it.")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Pending reviews are invisible on the storefront.
	visible, total, err := svc.ListApproved(product.ID, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 || len(visible) != 0 {
		t.Fatalf("pending review must not be listed, got %d", total)
	}

	approved, err := svc.Moderate(review.ID, true)
	if err != nil {
		t.Fatalf("moderate failed: %v", err)
	}
	if approved.Status != constants.ReviewStatusApproved {
		t.Fatalf("status want approved got %s", approved.Status)
	}

	visible, total, err = svc.ListApproved(product.ID, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(visible) != 1 {
		t.Fatalf("approved review must be listed, got %d", total)
	}

	rejected, err := svc.Moderate(review.ID, false)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != constants.ReviewStatusRejected {
		t.Fatalf("status want rejected got %s", rejected.Status)
	}
}
