package repository

import (
	"errors"
	"strings"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"

	"gorm.io/gorm"
)

// ShipmentRepository is the shipment data access interface.
type ShipmentRepository interface {
	GetByOrder(orderID uint) (*models.Shipment, error)
	GetByTrackingNumber(trackingNumber string) (*models.Shipment, error)
	Create(shipment *models.Shipment) error
	Update(shipment *models.Shipment) error
	WithTx(tx *gorm.DB) ShipmentRepository
}

// GormShipmentRepository is the GORM implementation.
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository creates the shipment repository.
func NewShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormShipmentRepository) WithTx(tx *gorm.DB) ShipmentRepository {
	if tx == nil {
		return r
	}
	return &GormShipmentRepository{db: tx}
}

// GetByOrder fetches the shipment of an order.
func (r *GormShipmentRepository) GetByOrder(orderID uint) (*models.Shipment, error) {
	if orderID == 0 {
		return nil, errors.New("invalid order id")
	}
	var shipment models.Shipment
	err := r.db.Where("order_id = ?", orderID).First(&shipment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

// GetByTrackingNumber fetches a shipment by tracking number.
func (r *GormShipmentRepository) GetByTrackingNumber(trackingNumber string) (*models.Shipment, error) {
	normalized := strings.TrimSpace(trackingNumber)
	if normalized == "" {
		return nil, errors.New("invalid tracking number")
	}
	var shipment models.Shipment
	err := r.db.Where("tracking_number = ?", normalized).First(&shipment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

// Create inserts a shipment.
func (r *GormShipmentRepository) Create(shipment *models.Shipment) error {
	if shipment == nil {
		return errors.New("shipment is nil")
	}
	return r.db.Create(shipment).Error
}

// Update saves a shipment.
func (r *GormShipmentRepository) Update(shipment *models.Shipment) error {
	if shipment == nil {
		return errors.New("shipment is nil")
	}
	return r.db.Save(shipment).Error
}
