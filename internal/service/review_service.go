package service

import (
	"strings"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"
)

// ReviewService handles customer reviews with moderation.
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewReviewService creates the review service.
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// ListApproved returns published reviews of a product.
func (s *ReviewService) ListApproved(productID uint, page, pageSize int) ([]models.Review, int64, error) {
	return s.reviewRepo.List(repository.ReviewListFilter{
		ProductID: productID,
		Status:    constants.ReviewStatusApproved,
		Page:      page,
		PageSize:  pageSize,
	})
}

// ListForAdmin returns reviews in any state.
func (s *ReviewService) ListForAdmin(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	return s.reviewRepo.List(filter)
}

// Submit creates a pending review. The user must have a delivered
// order containing the product, and only one review per product.
func (s *ReviewService) Submit(userID, productID uint, rating int, title, body string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrReviewInvalidRating
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.reviewRepo.GetByProductAndUser(productID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewDuplicate
	}

	purchased, err := s.hasDeliveredPurchase(userID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, ErrReviewNotPurchased
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Title:     strings.TrimSpace(title),
		Body:      strings.TrimSpace(body),
		Status:    constants.ReviewStatusPending,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Moderate approves or rejects a pending review.
func (s *ReviewService) Moderate(reviewID uint, approve bool) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if approve {
		review.Status = constants.ReviewStatusApproved
	} else {
		review.Status = constants.ReviewStatusRejected
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) hasDeliveredPurchase(userID, productID uint) (bool, error) {
	orders, _, err := s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Status:   constants.OrderStatusDelivered,
		Page:     1,
		PageSize: 200,
	})
	if err != nil {
		return false, err
	}
	for _, order := range orders {
		for _, item := range order.Items {
			if item.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}
