package service

import (
	"strings"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"

	"gorm.io/gorm"
)

// StockService handles admin stock operations. Every change goes
// through the same guarded updates as checkout and lands in the ledger.
type StockService struct {
	variantRepo  repository.VariantRepository
	movementRepo repository.StockMovementRepository
}

// NewStockService creates the stock service.
func NewStockService(variantRepo repository.VariantRepository, movementRepo repository.StockMovementRepository) *StockService {
	return &StockService{variantRepo: variantRepo, movementRepo: movementRepo}
}

// Restock adds received units to a variant.
func (s *StockService) Restock(variantID uint, quantity int, adminID uint, note string) (*models.ProductVariant, error) {
	if quantity <= 0 {
		return nil, ErrInvalidStockOperation
	}
	return s.apply(variantID, quantity, constants.StockMovementRestock, adminID, note)
}

// Adjust corrects a variant's stock by a signed delta, e.g. after a
// physical count. Negative adjustments fail rather than push stock
// below zero.
func (s *StockService) Adjust(variantID uint, delta int, adminID uint, note string) (*models.ProductVariant, error) {
	if delta == 0 {
		return nil, ErrInvalidStockOperation
	}
	return s.apply(variantID, delta, constants.StockMovementAdjustment, adminID, note)
}

func (s *StockService) apply(variantID uint, delta int, movementType string, adminID uint, note string) (*models.ProductVariant, error) {
	var updated *models.ProductVariant
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		variantRepo := s.variantRepo.WithTx(tx)
		movementRepo := s.movementRepo.WithTx(tx)

		variant, err := variantRepo.GetByID(variantID)
		if err != nil {
			return err
		}
		if variant == nil {
			return ErrVariantNotFound
		}

		var affected int64
		if delta > 0 {
			affected, err = variantRepo.IncrementStock(variantID, delta)
		} else {
			affected, err = variantRepo.DecrementStock(variantID, -delta)
		}
		if err != nil {
			return err
		}
		if affected == 0 {
			return &InsufficientStockError{
				VariantID: variantID,
				SKU:       variant.SKU,
				Requested: -delta,
				Available: variant.StockOnHand,
			}
		}

		variant, err = variantRepo.GetByID(variantID)
		if err != nil {
			return err
		}
		movement := &models.StockMovement{
			VariantID:  variantID,
			Type:       movementType,
			Quantity:   delta,
			StockAfter: variant.StockOnHand,
			Actor:      constants.StockActorAdmin,
			ActorID:    adminID,
			Note:       strings.TrimSpace(note),
		}
		if err := movementRepo.Create(movement); err != nil {
			return err
		}
		updated = variant
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListMovements returns ledger rows for audit views.
func (s *StockService) ListMovements(filter repository.StockMovementListFilter) ([]models.StockMovement, int64, error) {
	return s.movementRepo.List(filter)
}

// VerifyLedger compares the ledger sum for a variant against its
// current stock_on_hand. A mismatch means a write bypassed the ledger.
func (s *StockService) VerifyLedger(variantID uint) (bool, int64, int, error) {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return false, 0, 0, err
	}
	if variant == nil {
		return false, 0, 0, ErrVariantNotFound
	}
	sum, err := s.movementRepo.SumByVariant(variantID)
	if err != nil {
		return false, 0, 0, err
	}
	return sum == int64(variant.StockOnHand), sum, variant.StockOnHand, nil
}
