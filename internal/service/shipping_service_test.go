package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"

	"gorm.io/gorm"
)

func setupShippingServiceTest(t *testing.T) (*ShippingService, *gorm.DB) {
	t.Helper()
	_, db := setupOrderServiceTest(t)
	svc := NewShippingService(
		nil,
		repository.NewCartRepository(db),
		repository.NewOrderRepository(db),
		repository.NewShipmentRepository(db),
		nil,
	)
	return svc, db
}

func seedPaidOrder(t *testing.T, db *gorm.DB, userID uint) models.Order {
	t.Helper()
	order, _ := seedPendingOrder(t, db, userID, 1, nil)
	now := time.Now()
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{"status": constants.OrderStatusPaid, "paid_at": &now}).Error; err != nil {
		t.Fatalf("mark order paid failed: %v", err)
	}
	order.Status = constants.OrderStatusPaid
	return order
}

func TestShipOrderCreatesShipmentOnce(t *testing.T) {
	svc, db := setupShippingServiceTest(t)
	order := seedPaidOrder(t, db, 1)

	shipment, err := svc.ShipOrder(ShipOrderInput{
		OrderID:        order.ID,
		Method:         constants.ShippingMethodExpress,
		TrackingNumber: "APX900012345",
		AdminID:        7,
	})
	if err != nil {
		t.Fatalf("ship order failed: %v", err)
	}
	if shipment.Carrier != constants.ShipmentCarrierAusPost {
		t.Fatalf("carrier want auspost got %s", shipment.Carrier)
	}
	if shipment.Status != constants.ShipmentStatusInTransit {
		t.Fatalf("shipment status want in_transit got %s", shipment.Status)
	}
	if shipment.ShippedAt == nil {
		t.Fatalf("shipped_at must be set")
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusShipped {
		t.Fatalf("order status want shipped got %s", reloaded.Status)
	}

	_, err = svc.ShipOrder(ShipOrderInput{
		OrderID:        order.ID,
		Method:         constants.ShippingMethodExpress,
		TrackingNumber: "APX900099999",
		AdminID:        7,
	})
	if !errors.Is(err, ErrShipmentExists) && !errors.Is(err, ErrOrderStateConflict) {
		t.Fatalf("want shipment exists or state conflict, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Shipment{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		t.Fatalf("count shipments failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("shipments want 1 got %d", count)
	}
}

func TestShipOrderDuplicateShipmentRejected(t *testing.T) {
	svc, db := setupShippingServiceTest(t)
	order := seedPaidOrder(t, db, 2)

	// A shipment row left behind by an earlier dispatch attempt blocks a
	// second one even while the order is still paid.
	if err := db.Create(&models.Shipment{
		OrderID:        order.ID,
		Carrier:        constants.ShipmentCarrierAusPost,
		Method:         constants.ShippingMethodStandard,
		TrackingNumber: "APX900050000",
		Status:         constants.ShipmentStatusInTransit,
	}).Error; err != nil {
		t.Fatalf("seed shipment failed: %v", err)
	}

	_, err := svc.ShipOrder(ShipOrderInput{
		OrderID:        order.ID,
		Method:         constants.ShippingMethodStandard,
		TrackingNumber: "APX900050001",
		AdminID:        7,
	})
	if !errors.Is(err, ErrShipmentExists) {
		t.Fatalf("want ErrShipmentExists got %v", err)
	}
}

func TestShipOrderValidation(t *testing.T) {
	svc, db := setupShippingServiceTest(t)

	if _, err := svc.ShipOrder(ShipOrderInput{OrderID: 1, Method: constants.ShippingMethodStandard}); !errors.Is(err, ErrShipmentInvalid) {
		t.Fatalf("missing tracking: want ErrShipmentInvalid got %v", err)
	}

	order := seedPaidOrder(t, db, 3)
	if _, err := svc.ShipOrder(ShipOrderInput{OrderID: order.ID, Method: "carrier-pigeon", TrackingNumber: "X1"}); !errors.Is(err, ErrShipmentInvalid) {
		t.Fatalf("bad method: want ErrShipmentInvalid got %v", err)
	}

	pending, _ := seedPendingOrder(t, db, 4, 1, nil)
	if _, err := svc.ShipOrder(ShipOrderInput{OrderID: pending.ID, Method: constants.ShippingMethodStandard, TrackingNumber: "X2"}); !errors.Is(err, ErrOrderStateConflict) {
		t.Fatalf("pending order: want ErrOrderStateConflict got %v", err)
	}
}
