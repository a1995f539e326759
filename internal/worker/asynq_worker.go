package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/logger"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/provider"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/queue"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles queued tasks using the shared container.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{Container: c}
}

// Register binds task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmation, c.handleOrderConfirmation)
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
	mux.HandleFunc(queue.TaskOrderTimeoutCancel, c.handleOrderTimeoutCancel)
	mux.HandleFunc(queue.TaskShipmentNotify, c.handleShipmentNotify)
}

func (c *Consumer) handleOrderConfirmation(_ context.Context, task *asynq.Task) error {
	var payload queue.OrderConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirmation_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_confirmation_skip_invalid_payload")
		return nil
	}
	err := c.NotificationService.SendOrderConfirmation(payload.OrderID)
	if err != nil {
		if isPermanentNotifyError(err) {
			logger.Debugw("worker_order_confirmation_skip", "order_id", payload.OrderID, "reason", err.Error())
			return nil
		}
		logger.Warnw("worker_order_confirmation_send_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	logger.Infow("worker_order_confirmation_sent", "order_id", payload.OrderID, "order_no", payload.OrderNo)
	return nil
}

func (c *Consumer) handleOrderStatusNotify(_ context.Context, task *asynq.Task) error {
	var payload queue.OrderStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 || payload.Status == "" {
		logger.Debugw("worker_order_status_skip_invalid_payload")
		return nil
	}
	err := c.NotificationService.SendOrderStatus(payload.OrderID, payload.Status)
	if err != nil {
		if isPermanentNotifyError(err) {
			logger.Debugw("worker_order_status_skip", "order_id", payload.OrderID, "reason", err.Error())
			return nil
		}
		logger.Warnw("worker_order_status_send_failed", "order_id", payload.OrderID, "status", payload.Status, "error", err)
		return err
	}
	logger.Infow("worker_order_status_sent", "order_id", payload.OrderID, "status", payload.Status)
	return nil
}

func (c *Consumer) handleOrderTimeoutCancel(_ context.Context, task *asynq.Task) error {
	var payload queue.OrderTimeoutCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_timeout_cancel_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_timeout_cancel_skip_invalid_payload")
		return nil
	}
	order, err := c.OrderService.CancelExpiredOrder(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_timeout_cancel_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		// Paid or already cancelled before the deadline fired.
		logger.Debugw("worker_order_timeout_cancel_noop", "order_id", payload.OrderID)
		return nil
	}
	logger.Infow("worker_order_timeout_cancelled", "order_id", order.ID, "order_no", order.OrderNo)
	return nil
}

func (c *Consumer) handleShipmentNotify(_ context.Context, task *asynq.Task) error {
	var payload queue.ShipmentNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_shipment_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_shipment_notify_skip_invalid_payload")
		return nil
	}
	err := c.NotificationService.SendShipmentNotice(payload.OrderID, payload.TrackingNumber)
	if err != nil {
		if isPermanentNotifyError(err) {
			logger.Debugw("worker_shipment_notify_skip", "order_id", payload.OrderID, "reason", err.Error())
			return nil
		}
		logger.Warnw("worker_shipment_notify_send_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	logger.Infow("worker_shipment_notify_sent", "order_id", payload.OrderID, "tracking_number", payload.TrackingNumber)
	return nil
}

// isPermanentNotifyError reports delivery failures that retrying will
// never fix. The task is dropped instead of requeued.
func isPermanentNotifyError(err error) bool {
	return errors.Is(err, service.ErrEmailDisabled) ||
		errors.Is(err, service.ErrEmailNotConfigured) ||
		errors.Is(err, service.ErrEmailInvalid) ||
		errors.Is(err, service.ErrOrderNotFound) ||
		errors.Is(err, service.ErrUserNotFound)
}
