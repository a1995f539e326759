package service

import (
	"context"
	"errors"
	"time"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/config"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/logger"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/queue"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/shipping/auspost"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Satchel dimensions used for every parcel quote. Jewellery ships in
// one padded box size regardless of item count.
const (
	parcelLengthCM = 22
	parcelWidthCM  = 16
	parcelHeightCM = 8
)

// minParcelWeightKG is the carrier's billable floor.
var minParcelWeightKG = decimal.NewFromFloat(0.5)

// ShippingService quotes postage and manages shipment records.
type ShippingService struct {
	carrier        *auspost.Client
	cartRepo       repository.CartRepository
	orderRepo      repository.OrderRepository
	shipmentRepo   repository.ShipmentRepository
	queueClient    *queue.Client
	originPostcode string
}

func NewShippingService(cfg *config.AusPostConfig, cartRepo repository.CartRepository, orderRepo repository.OrderRepository, shipmentRepo repository.ShipmentRepository, queueClient *queue.Client) *ShippingService {
	svc := &ShippingService{
		cartRepo:     cartRepo,
		orderRepo:    orderRepo,
		shipmentRepo: shipmentRepo,
		queueClient:  queueClient,
	}
	if cfg == nil || !cfg.Enabled {
		return svc
	}
	client, err := auspost.NewClient(cfg.BaseURL, cfg.APIKey, time.Duration(cfg.TimeoutMS)*time.Millisecond)
	if err != nil {
		logger.Warnw("shipping_carrier_init_failed", "error", err)
		return svc
	}
	svc.carrier = client
	svc.originPostcode = cfg.OriginPostcode
	return svc
}

// ShippingQuote is one priced shipping method for a destination.
type ShippingQuote struct {
	Method       string       `json:"method"`
	ServiceName  string       `json:"service_name"`
	Cost         models.Money `json:"cost"`
	DeliveryTime string       `json:"delivery_time"`
}

// QuoteForCart prices both shipping methods for the user's cart.
func (s *ShippingService) QuoteForCart(ctx context.Context, userID uint, toPostcode string) ([]ShippingQuote, error) {
	if s.carrier == nil {
		return nil, ErrShippingUnavailable
	}
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}
	weight := cartWeightKG(cart.Items)
	return s.quoteBothMethods(ctx, toPostcode, weight)
}

func (s *ShippingService) quoteBothMethods(ctx context.Context, toPostcode string, weightKG decimal.Decimal) ([]ShippingQuote, error) {
	services := []struct {
		method string
		code   string
	}{
		{constants.ShippingMethodStandard, auspost.ServiceRegular},
		{constants.ShippingMethodExpress, auspost.ServiceExpress},
	}

	quotes := make([]ShippingQuote, 0, len(services))
	for _, svc := range services {
		quote, err := s.carrier.DomesticParcelQuote(ctx, auspost.QuoteInput{
			FromPostcode: s.originPostcode,
			ToPostcode:   toPostcode,
			LengthCM:     parcelLengthCM,
			WidthCM:      parcelWidthCM,
			HeightCM:     parcelHeightCM,
			WeightKG:     weightKG,
			ServiceCode:  svc.code,
		})
		if err != nil {
			if errors.Is(err, auspost.ErrNoService) {
				continue
			}
			logger.Warnw("shipping_quote_failed",
				"to_postcode", toPostcode,
				"service_code", svc.code,
				"error", err,
			)
			return nil, ErrShippingUnavailable
		}
		quotes = append(quotes, ShippingQuote{
			Method:       svc.method,
			ServiceName:  quote.ServiceName,
			Cost:         models.NewMoneyFromDecimal(quote.TotalCost),
			DeliveryTime: quote.DeliveryTime,
		})
	}
	if len(quotes) == 0 {
		return nil, ErrShippingUnavailable
	}
	return quotes, nil
}

func cartWeightKG(items []models.CartItem) decimal.Decimal {
	grams := 0
	for i := range items {
		grams += items[i].Variant.WeightGrams * items[i].Quantity
	}
	weight := decimal.NewFromInt(int64(grams)).Div(decimal.NewFromInt(1000))
	if weight.LessThan(minParcelWeightKG) {
		return minParcelWeightKG
	}
	return weight
}

// ShipOrderInput is the admin dispatch request.
type ShipOrderInput struct {
	OrderID        uint
	Method         string
	TrackingNumber string
	Cost           models.Money
	AdminID        uint
}

// ShipOrder records the dispatch of a paid order: the shipment row and
// the order's shipped transition commit together.
func (s *ShippingService) ShipOrder(input ShipOrderInput) (*models.Shipment, error) {
	if input.OrderID == 0 || input.TrackingNumber == "" {
		return nil, ErrShipmentInvalid
	}
	switch input.Method {
	case constants.ShippingMethodStandard, constants.ShippingMethodExpress:
	default:
		return nil, ErrShipmentInvalid
	}

	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !CanTransition(order.Status, constants.OrderStatusShipped) {
		return nil, ErrOrderStateConflict
	}
	existing, err := s.shipmentRepo.GetByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrShipmentExists
	}

	now := time.Now()
	shipment := &models.Shipment{
		OrderID:        order.ID,
		Carrier:        constants.ShipmentCarrierAusPost,
		Method:         input.Method,
		TrackingNumber: input.TrackingNumber,
		Cost:           input.Cost,
		Status:         constants.ShipmentStatusInTransit,
		ShippedAt:      &now,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.shipmentRepo.WithTx(tx).Create(shipment); err != nil {
			return err
		}
		return s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusShipped, map[string]interface{}{
			"shipped_at": &now,
		})
	})
	if err != nil {
		logger.Errorw("shipping_dispatch_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil, err
	}
	logger.Infow("shipping_order_dispatched",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"tracking_number", shipment.TrackingNumber,
		"admin_id", input.AdminID,
	)
	s.notifyShipped(order.ID, shipment.TrackingNumber)
	return shipment, nil
}

// MarkDelivered settles the shipment and the order together.
func (s *ShippingService) MarkDelivered(orderID uint) (*models.Shipment, error) {
	shipment, err := s.shipmentRepo.GetByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, ErrShipmentNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !CanTransition(order.Status, constants.OrderStatusDelivered) {
		return nil, ErrOrderStateConflict
	}

	now := time.Now()
	shipment.Status = constants.ShipmentStatusDelivered
	shipment.DeliveredAt = &now
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.shipmentRepo.WithTx(tx).Update(shipment); err != nil {
			return err
		}
		return s.orderRepo.WithTx(tx).UpdateStatus(orderID, constants.OrderStatusDelivered, map[string]interface{}{
			"delivered_at": &now,
		})
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

// GetShipmentForOrder returns the shipment for a user's own order.
func (s *ShippingService) GetShipmentForOrder(orderNo string, userID uint) (*models.Shipment, error) {
	order, err := s.orderRepo.GetByOrderNoAndUser(orderNo, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	shipment, err := s.shipmentRepo.GetByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, ErrShipmentNotFound
	}
	return shipment, nil
}

func (s *ShippingService) notifyShipped(orderID uint, trackingNumber string) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueShipmentNotify(queue.ShipmentNotifyPayload{
		OrderID:        orderID,
		TrackingNumber: trackingNumber,
	}); err != nil {
		logger.Errorw("shipping_enqueue_notify_failed",
			"order_id", orderID,
			"error", err,
		)
	}
}
