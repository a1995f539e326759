package service

import (
	"errors"
	"time"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/logger"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/queue"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"

	"gorm.io/gorm"
)

// OrderService owns the order lifecycle after checkout.
type OrderService struct {
	orderRepo    repository.OrderRepository
	variantRepo  repository.VariantRepository
	movementRepo repository.StockMovementRepository
	queueClient  *queue.Client
}

// NewOrderService creates the order service.
func NewOrderService(orderRepo repository.OrderRepository, variantRepo repository.VariantRepository, movementRepo repository.StockMovementRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		variantRepo:  variantRepo,
		movementRepo: movementRepo,
		queueClient:  queueClient,
	}
}

var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusPaid:      true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusPaid: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
		constants.OrderStatusRefunded:  true,
		constants.OrderStatusDisputed:  true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusDisputed:  true,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusRefunded: true,
		constants.OrderStatusDisputed: true,
	},
	constants.OrderStatusDisputed: {
		constants.OrderStatusRefunded: true,
		constants.OrderStatusPaid:     true,
	},
}

// CanTransition reports whether an order may move between two states.
func CanTransition(current, target string) bool {
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}

// GetOrderByUser fetches one order owned by the user.
func (s *OrderService) GetOrderByUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByUserOrderNo fetches one order by number, scoped to the user.
func (s *OrderService) GetOrderByUserOrderNo(orderNo string, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNoAndUser(orderNo, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser lists the user's orders.
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// ListOrdersForAdmin lists orders across all users.
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetOrderForAdmin fetches any order.
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// MarkPaid moves a pending order to paid. Used by the payment webhook.
func (s *OrderService) MarkPaid(orderID uint, paidAt time.Time) (*models.Order, error) {
	return s.transition(orderID, constants.OrderStatusPaid, map[string]interface{}{
		"paid_at": &paidAt,
	})
}

// MarkShipped moves a paid order to shipped.
func (s *OrderService) MarkShipped(orderID uint, shippedAt time.Time) (*models.Order, error) {
	return s.transition(orderID, constants.OrderStatusShipped, map[string]interface{}{
		"shipped_at": &shippedAt,
	})
}

// MarkDelivered moves a shipped order to delivered.
func (s *OrderService) MarkDelivered(orderID uint, deliveredAt time.Time) (*models.Order, error) {
	return s.transition(orderID, constants.OrderStatusDelivered, map[string]interface{}{
		"delivered_at": &deliveredAt,
	})
}

// MarkDisputed flags an order as disputed. Used by the chargeback webhook.
func (s *OrderService) MarkDisputed(orderID uint) (*models.Order, error) {
	return s.transition(orderID, constants.OrderStatusDisputed, nil)
}

func (s *OrderService) transition(orderID uint, target string, updates map[string]interface{}) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !CanTransition(order.Status, target) {
		return nil, ErrOrderStateConflict
	}
	if err := s.orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
		return nil, err
	}

	s.notifyStatus(order.ID, target)
	return s.orderRepo.GetByID(order.ID)
}

// CancelOrder cancels an unpaid order on behalf of its owner and puts
// the decremented stock back, with release rows in the ledger.
func (s *OrderService) CancelOrder(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderStateConflict
	}
	return s.cancelAndRelease(order, constants.StockActorCheckout, userID)
}

// CancelOrderForAdmin cancels a pending or paid order and releases its
// stock back to the shelf.
func (s *OrderService) CancelOrderForAdmin(orderID, adminID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !CanTransition(order.Status, constants.OrderStatusCancelled) {
		return nil, ErrOrderStateConflict
	}
	return s.cancelAndRelease(order, constants.StockActorAdmin, adminID)
}

// CancelExpiredOrder cancels an order whose payment window lapsed.
// Invoked by the queue worker; a no-op when the order already left the
// pending state.
func (s *OrderService) CancelExpiredOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return order, nil
	}
	if order.ExpiresAt != nil && time.Now().Before(*order.ExpiresAt) {
		return order, nil
	}
	return s.cancelAndRelease(order, constants.StockActorSystem, 0)
}

// cancelAndRelease cancels the order and restores every line's stock
// inside one transaction, appending a release row per line.
func (s *OrderService) cancelAndRelease(order *models.Order, actor string, actorID uint) (*models.Order, error) {
	now := time.Now()
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)
		movementRepo := s.movementRepo.WithTx(tx)

		if err := orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, map[string]interface{}{
			"canceled_at": &now,
		}); err != nil {
			return err
		}

		for _, item := range order.Items {
			if _, err := variantRepo.IncrementStock(item.VariantID, item.Quantity); err != nil {
				return err
			}
			variant, err := variantRepo.GetByID(item.VariantID)
			if err != nil {
				return err
			}
			if variant == nil {
				return ErrVariantNotFound
			}
			movement := &models.StockMovement{
				VariantID:  item.VariantID,
				Type:       constants.StockMovementRelease,
				Quantity:   item.Quantity,
				StockAfter: variant.StockOnHand,
				OrderID:    &order.ID,
				Actor:      actor,
				ActorID:    actorID,
				CreatedAt:  now,
			}
			if err := movementRepo.Create(movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVariantNotFound) {
			return nil, err
		}
		logger.Errorw("order_cancel_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil, ErrOrderStateConflict
	}

	s.notifyStatus(order.ID, constants.OrderStatusCancelled)
	return s.orderRepo.GetByID(order.ID)
}

func (s *OrderService) notifyStatus(orderID uint, status string) {
	if s.queueClient == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Errorw("order_enqueue_status_notify_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
}
