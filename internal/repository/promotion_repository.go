package repository

import (
	"errors"
	"strings"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository is the promotion data access interface.
type PromotionRepository interface {
	List(onlyActive bool, page, pageSize int) ([]models.Promotion, int64, error)
	GetByID(id uint) (*models.Promotion, error)
	GetByCode(code string) (*models.Promotion, error)
	Create(promotion *models.Promotion) error
	Update(promotion *models.Promotion) error
	Delete(id uint) error
	ConsumeUse(promotionID uint) (int64, error)
	CreateUsage(usage *models.PromotionUsage) error
	CountUsageByUser(promotionID, userID uint) (int64, error)
	WithTx(tx *gorm.DB) PromotionRepository
}

// GormPromotionRepository is the GORM implementation.
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository creates the promotion repository.
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPromotionRepository) WithTx(tx *gorm.DB) PromotionRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionRepository{db: tx}
}

// List returns promotions, newest first.
func (r *GormPromotionRepository) List(onlyActive bool, page, pageSize int) ([]models.Promotion, int64, error) {
	query := r.db.Model(&models.Promotion{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Promotion
	query = applyPagination(query.Order("id DESC"), page, pageSize)
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetByID fetches a promotion by id.
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	if id == 0 {
		return nil, errors.New("invalid promotion id")
	}
	var item models.Promotion
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByCode fetches a promotion by its code, case-insensitive.
func (r *GormPromotionRepository) GetByCode(code string) (*models.Promotion, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, errors.New("invalid promotion code")
	}
	var item models.Promotion
	if err := r.db.Where("upper(code) = ?", normalized).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a promotion.
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	if promotion == nil {
		return errors.New("promotion is nil")
	}
	return r.db.Create(promotion).Error
}

// Update saves a promotion.
func (r *GormPromotionRepository) Update(promotion *models.Promotion) error {
	if promotion == nil {
		return errors.New("promotion is nil")
	}
	return r.db.Save(promotion).Error
}

// Delete soft-deletes a promotion.
func (r *GormPromotionRepository) Delete(id uint) error {
	if id == 0 {
		return errors.New("invalid promotion id")
	}
	return r.db.Delete(&models.Promotion{}, id).Error
}

// ConsumeUse increments used_count under the max_uses guard. Returns
// RowsAffected; zero means the promotion is exhausted.
func (r *GormPromotionRepository) ConsumeUse(promotionID uint) (int64, error) {
	if promotionID == 0 {
		return 0, errors.New("invalid promotion id")
	}
	result := r.db.Model(&models.Promotion{}).
		Where("id = ? AND (max_uses = 0 OR used_count < max_uses)", promotionID).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CreateUsage records one redemption.
func (r *GormPromotionRepository) CreateUsage(usage *models.PromotionUsage) error {
	if usage == nil {
		return errors.New("promotion usage is nil")
	}
	return r.db.Create(usage).Error
}

// CountUsageByUser counts redemptions of a promotion by one user.
func (r *GormPromotionRepository) CountUsageByUser(promotionID, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PromotionUsage{}).
		Where("promotion_id = ? AND user_id = ?", promotionID, userID).
		Count(&count).Error
	return count, err
}
