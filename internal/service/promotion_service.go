package service

import (
	"strings"
	"time"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"

	"github.com/shopspring/decimal"
)

// PromotionService validates and administers promotions. Consumption
// happens inside the checkout transaction, not here.
type PromotionService struct {
	promotionRepo repository.PromotionRepository
}

// NewPromotionService creates the promotion service.
func NewPromotionService(promotionRepo repository.PromotionRepository) *PromotionService {
	return &PromotionService{promotionRepo: promotionRepo}
}

// PromotionPreview is the quote for applying a code to a subtotal.
type PromotionPreview struct {
	Promotion *models.Promotion `json:"promotion"`
	Discount  models.Money      `json:"discount"`
	Total     models.Money      `json:"total"`
}

// Preview quotes the discount a code would yield without consuming it.
func (s *PromotionService) Preview(code string, subtotal decimal.Decimal) (*PromotionPreview, error) {
	promotion, err := s.promotionRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}

	now := time.Now()
	if !promotion.IsActive {
		return nil, ErrPromotionNotActive
	}
	if promotion.StartsAt != nil && now.Before(*promotion.StartsAt) {
		return nil, ErrPromotionNotActive
	}
	if promotion.EndsAt != nil && now.After(*promotion.EndsAt) {
		return nil, ErrPromotionNotActive
	}
	if promotion.MaxUses > 0 && promotion.UsedCount >= promotion.MaxUses {
		return nil, ErrPromotionExhausted
	}
	if promotion.MinAmount.Decimal.GreaterThan(decimal.Zero) && subtotal.LessThan(promotion.MinAmount.Decimal) {
		return nil, ErrPromotionMinAmount
	}

	discount := promotionDiscount(promotion, subtotal)
	return &PromotionPreview{
		Promotion: promotion,
		Discount:  models.NewMoneyFromDecimal(discount),
		Total:     models.NewMoneyFromDecimal(subtotal.Sub(discount)),
	}, nil
}

// List returns promotions for the admin.
func (s *PromotionService) List(onlyActive bool, page, pageSize int) ([]models.Promotion, int64, error) {
	return s.promotionRepo.List(onlyActive, page, pageSize)
}

// Create inserts a promotion; codes are stored upper-case.
func (s *PromotionService) Create(promotion *models.Promotion) error {
	if promotion == nil || strings.TrimSpace(promotion.Code) == "" {
		return ErrPromotionInvalid
	}
	if !isPromotionTypeValid(promotion.Type) {
		return ErrPromotionInvalid
	}
	promotion.Code = strings.ToUpper(strings.TrimSpace(promotion.Code))
	return s.promotionRepo.Create(promotion)
}

func isPromotionTypeValid(promotionType string) bool {
	switch promotionType {
	case constants.PromotionTypeFixed, constants.PromotionTypePercent, constants.PromotionTypeSpecialPrice:
		return true
	default:
		return false
	}
}

// Update saves a promotion.
func (s *PromotionService) Update(promotion *models.Promotion) error {
	if promotion == nil || promotion.ID == 0 {
		return ErrPromotionNotFound
	}
	if !isPromotionTypeValid(promotion.Type) {
		return ErrPromotionInvalid
	}
	if promotion.Code != "" {
		promotion.Code = strings.ToUpper(strings.TrimSpace(promotion.Code))
	}
	return s.promotionRepo.Update(promotion)
}

// Delete removes a promotion.
func (s *PromotionService) Delete(id uint) error {
	return s.promotionRepo.Delete(id)
}
