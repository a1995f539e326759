package queue

import (
	"encoding/json"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmation is the post-checkout confirmation task.
	TaskOrderConfirmation = constants.TaskOrderConfirmation
	// TaskOrderStatusNotify is the order status change notification task.
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
	// TaskOrderTimeoutCancel is the unpaid-order cancellation task.
	TaskOrderTimeoutCancel = constants.TaskOrderTimeoutCancel
	// TaskShipmentNotify is the shipment tracking notification task.
	TaskShipmentNotify = constants.TaskShipmentNotify
)

// OrderConfirmationPayload carries the order confirmation task data.
type OrderConfirmationPayload struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
}

// OrderStatusNotifyPayload carries the status notification task data.
type OrderStatusNotifyPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// OrderTimeoutCancelPayload carries the timeout cancellation task data.
type OrderTimeoutCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// ShipmentNotifyPayload carries the shipment notification task data.
type ShipmentNotifyPayload struct {
	OrderID        uint   `json:"order_id"`
	TrackingNumber string `json:"tracking_number"`
}

// NewOrderConfirmationTask builds the order confirmation task.
func NewOrderConfirmationTask(payload OrderConfirmationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmation, body), nil
}

// NewOrderStatusNotifyTask builds the status notification task.
func NewOrderStatusNotifyTask(payload OrderStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotify, body), nil
}

// NewOrderTimeoutCancelTask builds the timeout cancellation task.
func NewOrderTimeoutCancelTask(payload OrderTimeoutCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderTimeoutCancel, body), nil
}

// NewShipmentNotifyTask builds the shipment notification task.
func NewShipmentNotifyTask(payload ShipmentNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskShipmentNotify, body), nil
}
