package repository

import (
	"errors"
	"strings"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository is the category data access interface.
type CategoryRepository interface {
	List(onlyActive bool) ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) CategoryRepository
}

// GormCategoryRepository is the GORM implementation.
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates the category repository.
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCategoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	if tx == nil {
		return r
	}
	return &GormCategoryRepository{db: tx}
}

// List returns categories ordered by sort weight.
func (r *GormCategoryRepository) List(onlyActive bool) ([]models.Category, error) {
	query := r.db.Model(&models.Category{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var items []models.Category
	if err := query.Order("sort_order DESC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID fetches a category by id.
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	if id == 0 {
		return nil, errors.New("invalid category id")
	}
	var item models.Category
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetBySlug fetches a category by slug.
func (r *GormCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	normalized := strings.TrimSpace(slug)
	if normalized == "" {
		return nil, errors.New("invalid category slug")
	}
	var item models.Category
	if err := r.db.Where("slug = ?", normalized).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a category.
func (r *GormCategoryRepository) Create(category *models.Category) error {
	if category == nil {
		return errors.New("category is nil")
	}
	return r.db.Create(category).Error
}

// Update saves a category.
func (r *GormCategoryRepository) Update(category *models.Category) error {
	if category == nil {
		return errors.New("category is nil")
	}
	return r.db.Save(category).Error
}

// Delete soft-deletes a category.
func (r *GormCategoryRepository) Delete(id uint) error {
	if id == 0 {
		return errors.New("invalid category id")
	}
	return r.db.Delete(&models.Category{}, id).Error
}
