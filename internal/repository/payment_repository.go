package repository

import (
	"errors"
	"strings"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository is the payment data access interface.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetLatestByOrder(orderID uint) (*models.Payment, error)
	GetByProviderRef(provider, providerRef string) (*models.Payment, error)
	List(filter PaymentListFilter) ([]models.Payment, int64, error)
	Update(payment *models.Payment) error
	WithTx(tx *gorm.DB) PaymentRepository
}

// GormPaymentRepository is the GORM implementation.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates the payment repository.
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) PaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// Create inserts a payment.
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	if payment == nil {
		return errors.New("payment is nil")
	}
	return r.db.Create(payment).Error
}

// GetByID fetches a payment by id.
func (r *GormPaymentRepository) GetByID(id uint) (*models.Payment, error) {
	if id == 0 {
		return nil, errors.New("invalid payment id")
	}
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// GetLatestByOrder fetches the most recent payment of an order.
func (r *GormPaymentRepository) GetLatestByOrder(orderID uint) (*models.Payment, error) {
	if orderID == 0 {
		return nil, errors.New("invalid order id")
	}
	var payment models.Payment
	err := r.db.Where("order_id = ?", orderID).Order("id DESC").First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetByProviderRef fetches a payment by provider transaction id.
func (r *GormPaymentRepository) GetByProviderRef(provider, providerRef string) (*models.Payment, error) {
	ref := strings.TrimSpace(providerRef)
	if ref == "" {
		return nil, errors.New("invalid provider ref")
	}
	var payment models.Payment
	err := r.db.Where("provider = ? AND provider_ref = ?", provider, ref).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// List returns payments matching the filter.
func (r *GormPaymentRepository) List(filter PaymentListFilter) ([]models.Payment, int64, error) {
	query := r.db.Model(&models.Payment{})
	if filter.OrderID > 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if provider := strings.TrimSpace(filter.Provider); provider != "" {
		query = query.Where("provider = ?", provider)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
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

	var payments []models.Payment
	query = applyPagination(query.Order("id DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// Update saves a payment.
func (r *GormPaymentRepository) Update(payment *models.Payment) error {
	if payment == nil {
		return errors.New("payment is nil")
	}
	return r.db.Save(payment).Error
}
