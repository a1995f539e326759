package repository

import (
	"errors"
	"strings"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"

	"gorm.io/gorm"
)

// StockMovementRepository is the stock ledger access interface. The
// ledger is append-only: there is deliberately no update or delete.
type StockMovementRepository interface {
	Create(movement *models.StockMovement) error
	CreateBatch(movements []models.StockMovement) error
	List(filter StockMovementListFilter) ([]models.StockMovement, int64, error)
	SumByVariant(variantID uint) (int64, error)
	WithTx(tx *gorm.DB) StockMovementRepository
}

// GormStockMovementRepository is the GORM implementation.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository creates the ledger repository.
func NewStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormStockMovementRepository) WithTx(tx *gorm.DB) StockMovementRepository {
	if tx == nil {
		return r
	}
	return &GormStockMovementRepository{db: tx}
}

// Create appends one ledger row.
func (r *GormStockMovementRepository) Create(movement *models.StockMovement) error {
	if movement == nil {
		return errors.New("stock movement is nil")
	}
	return r.db.Create(movement).Error
}

// CreateBatch appends ledger rows in bulk.
func (r *GormStockMovementRepository) CreateBatch(movements []models.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return r.db.Create(&movements).Error
}

// List returns ledger rows matching the filter, newest first.
func (r *GormStockMovementRepository) List(filter StockMovementListFilter) ([]models.StockMovement, int64, error) {
	query := r.db.Model(&models.StockMovement{})
	if filter.VariantID > 0 {
		query = query.Where("variant_id = ?", filter.VariantID)
	}
	if filter.OrderID > 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if movementType := strings.TrimSpace(filter.Type); movementType != "" {
		query = query.Where("type = ?", movementType)
	}
	if actor := strings.TrimSpace(filter.Actor); actor != "" {
		query = query.Where("actor = ?", actor)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movements []models.StockMovement
	query = applyPagination(query.Order("id DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&movements).Error; err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}

// SumByVariant sums the signed quantities for one variant. With a
// complete ledger this equals the variant's current stock_on_hand.
func (r *GormStockMovementRepository) SumByVariant(variantID uint) (int64, error) {
	if variantID == 0 {
		return 0, errors.New("invalid variant id")
	}
	var sum struct {
		Total int64
	}
	err := r.db.Model(&models.StockMovement{}).
		Select("COALESCE(SUM(quantity), 0) AS total").
		Where("variant_id = ?", variantID).
		Take(&sum).Error
	if err != nil {
		return 0, err
	}
	return sum.Total, nil
}
