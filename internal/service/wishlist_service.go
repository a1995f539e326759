package service

import (
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"
)

// WishlistService manages saved products.
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService creates the wishlist service.
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// List returns the user's wishlist.
func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(userID)
}

// Add saves a product to the wishlist.
func (s *WishlistService) Add(userID, productID uint) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotFound
	}
	exists, err := s.wishlistRepo.Exists(userID, productID)
	if err != nil {
		return err
	}
	if exists {
		return ErrWishlistDuplicate
	}
	return s.wishlistRepo.Add(&models.WishlistItem{UserID: userID, ProductID: productID})
}

// Remove drops a product from the wishlist.
func (s *WishlistService) Remove(userID, productID uint) error {
	return s.wishlistRepo.Remove(userID, productID)
}
