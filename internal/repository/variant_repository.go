package repository

import (
	"errors"
	"strings"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"

	"gorm.io/gorm"
)

// VariantRepository is the product variant data access interface.
// DecrementStock and IncrementStock are the only write paths for
// StockOnHand; both are single guarded UPDATE statements so concurrent
// checkouts cannot oversell.
type VariantRepository interface {
	ListByProduct(productID uint, onlyActive bool) ([]models.ProductVariant, error)
	GetByID(id uint) (*models.ProductVariant, error)
	GetByProductAndSKU(productID uint, sku string) (*models.ProductVariant, error)
	ListByIDs(ids []uint) ([]models.ProductVariant, error)
	Create(variant *models.ProductVariant) error
	CreateBatch(variants []models.ProductVariant) error
	Update(variant *models.ProductVariant) error
	DeleteByProduct(productID uint) error
	DecrementStock(variantID uint, quantity int) (int64, error)
	IncrementStock(variantID uint, quantity int) (int64, error)
	WithTx(tx *gorm.DB) VariantRepository
}

// GormVariantRepository is the GORM implementation.
type GormVariantRepository struct {
	db *gorm.DB
}

// NewVariantRepository creates the variant repository.
func NewVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormVariantRepository) WithTx(tx *gorm.DB) VariantRepository {
	if tx == nil {
		return r
	}
	return &GormVariantRepository{db: tx}
}

// ListByProduct returns the variants of a product.
func (r *GormVariantRepository) ListByProduct(productID uint, onlyActive bool) ([]models.ProductVariant, error) {
	if productID == 0 {
		return nil, errors.New("invalid product id")
	}
	query := r.db.Model(&models.ProductVariant{}).Where("product_id = ?", productID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var items []models.ProductVariant
	if err := query.Order("sort_order DESC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID fetches a variant by id.
func (r *GormVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	if id == 0 {
		return nil, errors.New("invalid variant id")
	}
	var item models.ProductVariant
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByProductAndSKU fetches a variant by product and SKU code.
func (r *GormVariantRepository) GetByProductAndSKU(productID uint, sku string) (*models.ProductVariant, error) {
	if productID == 0 {
		return nil, errors.New("invalid product id")
	}
	code := strings.TrimSpace(sku)
	if code == "" {
		return nil, errors.New("invalid sku")
	}
	var item models.ProductVariant
	if err := r.db.Where("product_id = ? AND sku = ?", productID, code).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByIDs fetches variants in bulk.
func (r *GormVariantRepository) ListByIDs(ids []uint) ([]models.ProductVariant, error) {
	if len(ids) == 0 {
		return []models.ProductVariant{}, nil
	}
	var items []models.ProductVariant
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a variant.
func (r *GormVariantRepository) Create(variant *models.ProductVariant) error {
	if variant == nil {
		return errors.New("variant is nil")
	}
	return r.db.Create(variant).Error
}

// CreateBatch inserts variants in bulk.
func (r *GormVariantRepository) CreateBatch(variants []models.ProductVariant) error {
	if len(variants) == 0 {
		return nil
	}
	return r.db.Create(&variants).Error
}

// Update saves a variant.
func (r *GormVariantRepository) Update(variant *models.ProductVariant) error {
	if variant == nil {
		return errors.New("variant is nil")
	}
	return r.db.Save(variant).Error
}

// DeleteByProduct removes all variants of a product.
func (r *GormVariantRepository) DeleteByProduct(productID uint) error {
	if productID == 0 {
		return errors.New("invalid product id")
	}
	return r.db.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error
}

// DecrementStock subtracts quantity from stock_on_hand. The WHERE guard
// makes the update a no-op when stock is insufficient; callers check
// RowsAffected to detect the shortfall.
func (r *GormVariantRepository) DecrementStock(variantID uint, quantity int) (int64, error) {
	if variantID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.ProductVariant{}).
		Where("id = ? AND stock_on_hand >= ?", variantID, quantity).
		Update("stock_on_hand", gorm.Expr("stock_on_hand - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementStock adds quantity back to stock_on_hand (restock or
// release after cancellation).
func (r *GormVariantRepository) IncrementStock(variantID uint, quantity int) (int64, error) {
	if variantID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock increment params")
	}
	result := r.db.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		Update("stock_on_hand", gorm.Expr("stock_on_hand + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
