package service

import (
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"
)

// CartService manages the active cart.
type CartService struct {
	cartRepo    repository.CartRepository
	variantRepo repository.VariantRepository
}

// NewCartService creates the cart service.
func NewCartService(cartRepo repository.CartRepository, variantRepo repository.VariantRepository) *CartService {
	return &CartService{cartRepo: cartRepo, variantRepo: variantRepo}
}

// GetCart returns the user's cart, or an empty one when none exists.
func (s *CartService) GetCart(userID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	return cart, nil
}

// AddItem puts a variant into the cart, creating the cart lazily. The
// quantity replaces any existing line for the same variant. Stock is
// not reserved here; the checkout transaction is the only gate.
func (s *CartService) AddItem(userID, variantID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrCartItemInvalid
	}
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	if !variant.IsActive {
		return nil, ErrVariantUnavailable
	}

	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	item := &models.CartItem{
		CartID:    cart.ID,
		VariantID: variantID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.UpsertItem(item); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// UpdateItem sets the quantity of a cart line; zero removes it.
func (s *CartService) UpdateItem(userID, variantID uint, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, ErrCartItemInvalid
	}
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if err := s.cartRepo.UpdateItemQuantity(cart.ID, variantID, quantity); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// RemoveItem removes one line from the cart.
func (s *CartService) RemoveItem(userID, variantID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if err := s.cartRepo.DeleteItem(cart.ID, variantID); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// Clear deletes the user's cart and all of its lines.
func (s *CartService) Clear(userID uint) error {
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	_, err = s.cartRepo.DeleteCart(cart.ID)
	return err
}
