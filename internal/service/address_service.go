package service

import (
	"strings"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"

	"gorm.io/gorm"
)

// AddressService manages saved shipping addresses.
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService creates the address service.
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// List returns the user's addresses.
func (s *AddressService) List(userID uint) ([]models.Address, error) {
	return s.addressRepo.ListByUser(userID)
}

// Get returns one address owned by the user.
func (s *AddressService) Get(id, userID uint) (*models.Address, error) {
	address, err := s.addressRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

// Create saves a new address. Setting it default clears the old one.
func (s *AddressService) Create(address *models.Address) error {
	if address == nil || address.UserID == 0 {
		return ErrAddressNotFound
	}
	if strings.TrimSpace(address.Recipient) == "" ||
		strings.TrimSpace(address.Line1) == "" ||
		strings.TrimSpace(address.Postcode) == "" {
		return ErrAddressNotFound
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.addressRepo.WithTx(tx)
		if address.IsDefault {
			if err := repo.ClearDefault(address.UserID); err != nil {
				return err
			}
		}
		return repo.Create(address)
	})
}

// Update saves changes to an address owned by the user.
func (s *AddressService) Update(address *models.Address) error {
	if address == nil || address.ID == 0 || address.UserID == 0 {
		return ErrAddressNotFound
	}
	existing, err := s.addressRepo.GetByIDAndUser(address.ID, address.UserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrAddressNotFound
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.addressRepo.WithTx(tx)
		if address.IsDefault {
			if err := repo.ClearDefault(address.UserID); err != nil {
				return err
			}
		}
		return repo.Update(address)
	})
}

// Delete removes an address owned by the user.
func (s *AddressService) Delete(id, userID uint) error {
	return s.addressRepo.Delete(id, userID)
}
