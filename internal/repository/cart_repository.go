package repository

import (
	"errors"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface.
type CartRepository interface {
	GetActiveByUser(userID uint) (*models.Cart, error)
	GetOrCreateByUser(userID uint) (*models.Cart, error)
	UpsertItem(item *models.CartItem) error
	UpdateItemQuantity(cartID, variantID uint, quantity int) error
	DeleteItem(cartID, variantID uint) error
	DeleteCart(cartID uint) (int64, error)
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates the cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetActiveByUser returns the user's cart with items, or nil when the
// user has no active cart.
func (r *GormCartRepository) GetActiveByUser(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, errors.New("invalid user id")
	}
	var cart models.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id ASC")
	}).Preload("Items.Variant").Preload("Items.Variant.Product").
		Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateByUser returns the user's cart, creating it lazily.
func (r *GormCartRepository) GetOrCreateByUser(userID uint) (*models.Cart, error) {
	cart, err := r.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{UserID: userID}
	if err := r.db.Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// UpsertItem adds a line or replaces the quantity of an existing one.
func (r *GormCartRepository) UpsertItem(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("cart_id = ? AND variant_id = ?", item.CartID, item.VariantID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&existing).Update("quantity", item.Quantity).Error
}

// UpdateItemQuantity sets the quantity of one cart line.
func (r *GormCartRepository) UpdateItemQuantity(cartID, variantID uint, quantity int) error {
	if quantity <= 0 {
		return r.DeleteItem(cartID, variantID)
	}
	return r.db.Model(&models.CartItem{}).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		Update("quantity", quantity).Error
}

// DeleteItem removes one cart line.
func (r *GormCartRepository) DeleteItem(cartID, variantID uint) error {
	return r.db.Where("cart_id = ? AND variant_id = ?", cartID, variantID).Delete(&models.CartItem{}).Error
}

// DeleteCart removes a cart and its items, reporting how many cart
// rows were removed. A second call deletes nothing and returns zero,
// which lets checkout detect a cart another transaction already
// consumed.
func (r *GormCartRepository) DeleteCart(cartID uint) (int64, error) {
	if cartID == 0 {
		return 0, errors.New("invalid cart id")
	}
	if err := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return 0, err
	}
	result := r.db.Delete(&models.Cart{}, cartID)
	return result.RowsAffected, result.Error
}
