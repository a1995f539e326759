package repository

import (
	"errors"
	"strings"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository is the review data access interface.
type ReviewRepository interface {
	List(filter ReviewListFilter) ([]models.Review, int64, error)
	GetByID(id uint) (*models.Review, error)
	GetByProductAndUser(productID, userID uint) (*models.Review, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id uint) error
	AverageRating(productID uint) (float64, int64, error)
	WithTx(tx *gorm.DB) ReviewRepository
}

// GormReviewRepository is the GORM implementation.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates the review repository.
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormReviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	if tx == nil {
		return r
	}
	return &GormReviewRepository{db: tx}
}

// List returns reviews matching the filter, newest first.
func (r *GormReviewRepository) List(filter ReviewListFilter) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{})
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if filter.MinRating > 0 {
		query = query.Where("rating >= ?", filter.MinRating)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Review
	query = applyPagination(query.Order("id DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetByID fetches a review by id.
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	if id == 0 {
		return nil, errors.New("invalid review id")
	}
	var item models.Review
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByProductAndUser fetches a user's review of a product.
func (r *GormReviewRepository) GetByProductAndUser(productID, userID uint) (*models.Review, error) {
	if productID == 0 || userID == 0 {
		return nil, errors.New("invalid review query")
	}
	var item models.Review
	err := r.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a review.
func (r *GormReviewRepository) Create(review *models.Review) error {
	if review == nil {
		return errors.New("review is nil")
	}
	return r.db.Create(review).Error
}

// Update saves a review.
func (r *GormReviewRepository) Update(review *models.Review) error {
	if review == nil {
		return errors.New("review is nil")
	}
	return r.db.Save(review).Error
}

// Delete soft-deletes a review.
func (r *GormReviewRepository) Delete(id uint) error {
	if id == 0 {
		return errors.New("invalid review id")
	}
	return r.db.Delete(&models.Review{}, id).Error
}

// AverageRating returns the mean rating and count of approved reviews.
func (r *GormReviewRepository) AverageRating(productID uint) (float64, int64, error) {
	if productID == 0 {
		return 0, 0, errors.New("invalid product id")
	}
	var row struct {
		Average float64
		Total   int64
	}
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("product_id = ? AND status = ?", productID, constants.ReviewStatusApproved).
		Take(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Average, row.Total, nil
}
