package repository

import (
	"errors"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository is the wishlist data access interface.
type WishlistRepository interface {
	ListByUser(userID uint) ([]models.WishlistItem, error)
	Exists(userID, productID uint) (bool, error)
	Add(item *models.WishlistItem) error
	Remove(userID, productID uint) error
	WithTx(tx *gorm.DB) WishlistRepository
}

// GormWishlistRepository is the GORM implementation.
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates the wishlist repository.
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormWishlistRepository) WithTx(tx *gorm.DB) WishlistRepository {
	if tx == nil {
		return r
	}
	return &GormWishlistRepository{db: tx}
}

// ListByUser returns the user's wishlist, newest first.
func (r *GormWishlistRepository) ListByUser(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.db.Preload("Product").Where("user_id = ?", userID).Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Exists reports whether the product is already wishlisted.
func (r *GormWishlistRepository) Exists(userID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a wishlist entry.
func (r *GormWishlistRepository) Add(item *models.WishlistItem) error {
	if item == nil {
		return errors.New("wishlist item is nil")
	}
	return r.db.Create(item).Error
}

// Remove deletes a wishlist entry.
func (r *GormWishlistRepository) Remove(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{}).Error
}
