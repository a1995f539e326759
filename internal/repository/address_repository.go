package repository

import (
	"errors"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"

	"gorm.io/gorm"
)

// AddressRepository is the address data access interface.
type AddressRepository interface {
	ListByUser(userID uint) ([]models.Address, error)
	GetByIDAndUser(id, userID uint) (*models.Address, error)
	Create(address *models.Address) error
	Update(address *models.Address) error
	Delete(id, userID uint) error
	ClearDefault(userID uint) error
	WithTx(tx *gorm.DB) AddressRepository
}

// GormAddressRepository is the GORM implementation.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository creates the address repository.
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormAddressRepository) WithTx(tx *gorm.DB) AddressRepository {
	if tx == nil {
		return r
	}
	return &GormAddressRepository{db: tx}
}

// ListByUser returns the user's saved addresses, default first.
func (r *GormAddressRepository) ListByUser(userID uint) ([]models.Address, error) {
	var items []models.Address
	if err := r.db.Where("user_id = ?", userID).Order("is_default DESC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByIDAndUser fetches one address owned by the user.
func (r *GormAddressRepository) GetByIDAndUser(id, userID uint) (*models.Address, error) {
	if id == 0 || userID == 0 {
		return nil, errors.New("invalid address query")
	}
	var item models.Address
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts an address.
func (r *GormAddressRepository) Create(address *models.Address) error {
	if address == nil {
		return errors.New("address is nil")
	}
	return r.db.Create(address).Error
}

// Update saves an address.
func (r *GormAddressRepository) Update(address *models.Address) error {
	if address == nil {
		return errors.New("address is nil")
	}
	return r.db.Save(address).Error
}

// Delete removes one address owned by the user.
func (r *GormAddressRepository) Delete(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Address{}).Error
}

// ClearDefault unsets the default flag on all of the user's addresses.
func (r *GormAddressRepository) ClearDefault(userID uint) error {
	return r.db.Model(&models.Address{}).Where("user_id = ?", userID).Update("is_default", false).Error
}
