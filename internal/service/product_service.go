package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/cache"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"

	"gorm.io/gorm"
)

// ProductService serves the catalog.
type ProductService struct {
	productRepo  repository.ProductRepository
	variantRepo  repository.VariantRepository
	movementRepo repository.StockMovementRepository
	reviewRepo   repository.ReviewRepository
}

// NewProductService creates the product service.
func NewProductService(productRepo repository.ProductRepository, variantRepo repository.VariantRepository, movementRepo repository.StockMovementRepository, reviewRepo repository.ReviewRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		movementRepo: movementRepo,
		reviewRepo:   reviewRepo,
	}
}

// ProductDetail is a product plus derived review data.
type ProductDetail struct {
	models.Product
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// List returns catalog products.
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// productDetailTTL bounds staleness of the cached detail page. Stock
// is never read from this cache; checkout validates against the row.
const productDetailTTL = 5 * time.Minute

// GetBySlug returns a storefront product with rating summary.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductDetail, error) {
	cacheKey := fmt.Sprintf("%s:%s", cache.KeyProductDetail, slug)
	var cached ProductDetail
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	detail, err := s.buildDetail(product)
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, cacheKey, detail, productDetailTTL)
	return detail, nil
}

// GetForAdmin returns any product by id.
func (s *ProductService) GetForAdmin(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) buildDetail(product *models.Product) (*ProductDetail, error) {
	detail := &ProductDetail{Product: *product}
	if s.reviewRepo != nil {
		average, count, err := s.reviewRepo.AverageRating(product.ID)
		if err == nil {
			detail.AverageRating = average
			detail.ReviewCount = count
		}
	}
	return detail, nil
}

// CreateInput describes a new product with its variants.
type ProductCreateInput struct {
	CategoryID  uint
	Slug        string
	Name        string
	Description string
	Content     string
	Images      []string
	Tags        []string
	BasePrice   models.Money
	IsFeatured  bool
	IsActive    bool
	SortOrder   int
	Variants    []ProductVariantInput
}

// ProductVariantInput describes one variant of a new product.
type ProductVariantInput struct {
	SKU          string
	SpecValues   models.JSON
	Price        models.Money
	InitialStock int
	WeightGrams  int
	IsActive     bool
	SortOrder    int
}

// Create inserts a product with its variants; initial stock lands in
// the ledger as an adjustment by the creating admin.
func (s *ProductService) Create(input ProductCreateInput, adminID uint) (*models.Product, error) {
	slug := strings.TrimSpace(input.Slug)
	name := strings.TrimSpace(input.Name)
	if slug == "" || name == "" || input.CategoryID == 0 {
		return nil, ErrProductUnavailable
	}

	product := &models.Product{
		CategoryID:  input.CategoryID,
		Slug:        slug,
		Name:        name,
		Description: input.Description,
		Content:     input.Content,
		Images:      input.Images,
		Tags:        input.Tags,
		BasePrice:   input.BasePrice,
		IsFeatured:  input.IsFeatured,
		IsActive:    input.IsActive,
		SortOrder:   input.SortOrder,
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)
		movementRepo := s.movementRepo.WithTx(tx)

		if err := productRepo.Create(product); err != nil {
			return err
		}
		for _, v := range input.Variants {
			variant := models.ProductVariant{
				ProductID:      product.ID,
				SKU:            strings.TrimSpace(v.SKU),
				SpecValuesJSON: v.SpecValues,
				Price:          v.Price,
				StockOnHand:    v.InitialStock,
				WeightGrams:    v.WeightGrams,
				IsActive:       v.IsActive,
				SortOrder:      v.SortOrder,
			}
			if variant.SKU == "" {
				return ErrVariantUnavailable
			}
			if err := variantRepo.Create(&variant); err != nil {
				return err
			}
			if v.InitialStock > 0 {
				movement := &models.StockMovement{
					VariantID:  variant.ID,
					Type:       constants.StockMovementAdjustment,
					Quantity:   v.InitialStock,
					StockAfter: v.InitialStock,
					Actor:      constants.StockActorAdmin,
					ActorID:    adminID,
					Note:       "initial stock",
				}
				if err := movementRepo.Create(movement); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(product.ID)
}

// Update saves catalog fields of a product. Stock is out of scope here;
// use StockService.
func (s *ProductService) Update(product *models.Product) error {
	if product == nil || product.ID == 0 {
		return ErrProductNotFound
	}
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	s.invalidateDetail(product.Slug)
	return nil
}

// Delete soft-deletes a product and its variants.
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.variantRepo.WithTx(tx).DeleteByProduct(id); err != nil {
			return err
		}
		return s.productRepo.WithTx(tx).Delete(id)
	})
	if err != nil {
		return err
	}
	s.invalidateDetail(product.Slug)
	return nil
}

func (s *ProductService) invalidateDetail(slug string) {
	if strings.TrimSpace(slug) == "" {
		return
	}
	_ = cache.Del(context.Background(), fmt.Sprintf("%s:%s", cache.KeyProductDetail, slug))
}
