package repository

import (
	"errors"
	"strings"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"

	"gorm.io/gorm"
)

// ProductRepository is the product data access interface.
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository is the GORM implementation.
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates the product repository.
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List returns products matching the filter plus the total count.
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.OnlyFeatured {
		query = query.Where("is_featured = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		query = query.Where("tags LIKE ?", "%\""+tag+"\"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.WithVariants {
		query = query.Preload("Variants", "is_active = ?", true)
	}

	orderBy := "sort_order DESC, id DESC"
	switch filter.OrderBy {
	case "price_asc":
		orderBy = "base_price ASC, id DESC"
	case "price_desc":
		orderBy = "base_price DESC, id DESC"
	case "newest":
		orderBy = "created_at DESC, id DESC"
	}

	var items []models.Product
	query = applyPagination(query.Order(orderBy), filter.Page, filter.PageSize)
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetByID fetches a product with its variants.
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, errors.New("invalid product id")
	}
	var item models.Product
	if err := r.db.Preload("Category").Preload("Variants").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetBySlug fetches a product by slug with its variants.
func (r *GormProductRepository) GetBySlug(slug string) (*models.Product, error) {
	normalized := strings.TrimSpace(slug)
	if normalized == "" {
		return nil, errors.New("invalid product slug")
	}
	var item models.Product
	if err := r.db.Preload("Category").Preload("Variants").Where("slug = ?", normalized).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a product.
func (r *GormProductRepository) Create(product *models.Product) error {
	if product == nil {
		return errors.New("product is nil")
	}
	return r.db.Create(product).Error
}

// Update saves a product.
func (r *GormProductRepository) Update(product *models.Product) error {
	if product == nil {
		return errors.New("product is nil")
	}
	return r.db.Save(product).Error
}

// Delete soft-deletes a product.
func (r *GormProductRepository) Delete(id uint) error {
	if id == 0 {
		return errors.New("invalid product id")
	}
	return r.db.Delete(&models.Product{}, id).Error
}
