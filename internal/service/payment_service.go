package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/config"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/logger"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/payment/stripe"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/queue"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"

	"gorm.io/gorm"
)

// PaymentService drives the Stripe checkout session lifecycle and
// applies verified webhook events to payments and their orders.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	queueClient *queue.Client
	cfg         *config.StripeConfig
}

func NewPaymentService(paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository, queueClient *queue.Client, cfg *config.StripeConfig) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		queueClient: queueClient,
		cfg:         cfg,
	}
}

func (s *PaymentService) gatewayConfig() *stripe.Config {
	if s.cfg == nil {
		return &stripe.Config{}
	}
	return &stripe.Config{
		SecretKey:     s.cfg.SecretKey,
		WebhookSecret: s.cfg.WebhookSecret,
		SuccessURL:    s.cfg.SuccessURL,
		CancelURL:     s.cfg.CancelURL,
	}
}

// Enabled reports whether the Stripe gateway is configured.
func (s *PaymentService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// CreateCheckoutSession returns a hosted checkout URL for a pending
// order. Repeat calls reuse the session created earlier.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, orderNo string, userID uint) (*models.Payment, error) {
	if !s.Enabled() {
		return nil, ErrPaymentProviderDisabled
	}
	order, err := s.orderRepo.GetByOrderNoAndUser(strings.TrimSpace(orderNo), userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderStateConflict
	}
	if order.ExpiresAt != nil && time.Now().After(*order.ExpiresAt) {
		return nil, ErrOrderStateConflict
	}

	payment, err := s.paymentRepo.GetLatestByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status != constants.PaymentStatusPending {
		return nil, ErrOrderStateConflict
	}
	if payment.CheckoutURL != "" && payment.ProviderRef != "" {
		return payment, nil
	}

	result, err := stripe.CreateCheckoutSession(ctx, s.gatewayConfig(), stripe.CreateInput{
		OrderNo:     order.OrderNo,
		PaymentID:   payment.ID,
		Amount:      payment.Amount.String(),
		Currency:    payment.Currency,
		Description: "Order " + order.OrderNo,
	})
	if err != nil {
		logger.Errorw("payment_session_create_failed",
			"order_no", order.OrderNo,
			"payment_id", payment.ID,
			"error", err,
		)
		return nil, ErrPaymentCreateFailed
	}

	payment.ProviderRef = result.SessionID
	payment.CheckoutURL = result.URL
	payment.ProviderPayload = models.JSON(result.Raw)
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, ErrPaymentCreateFailed
	}
	logger.Infow("payment_session_created",
		"order_no", order.OrderNo,
		"payment_id", payment.ID,
		"session_id", result.SessionID,
	)
	return payment, nil
}

// GetPaymentForOrder returns the latest payment attempt for a user's order.
func (s *PaymentService) GetPaymentForOrder(orderNo string, userID uint) (*models.Payment, error) {
	order, err := s.orderRepo.GetByOrderNoAndUser(strings.TrimSpace(orderNo), userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	payment, err := s.paymentRepo.GetLatestByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// ListPaymentsForAdmin lists payment attempts with filters.
func (s *PaymentService) ListPaymentsForAdmin(filter repository.PaymentListFilter) ([]models.Payment, int64, error) {
	return s.paymentRepo.List(filter)
}

// HandleStripeWebhook verifies the event signature and applies the
// resulting payment state change. Replayed events are absorbed without
// moving a settled payment backwards.
func (s *PaymentService) HandleStripeWebhook(signatureHeader string, body []byte) (*models.Payment, string, error) {
	if s.cfg == nil || strings.TrimSpace(s.cfg.WebhookSecret) == "" {
		return nil, "", ErrPaymentProviderDisabled
	}
	result, err := stripe.VerifyAndParseWebhook(s.gatewayConfig(), signatureHeader, body, time.Now())
	if err != nil {
		logger.Warnw("payment_webhook_rejected", "error", err)
		if errors.Is(err, stripe.ErrSignatureInvalid) {
			return nil, "", ErrPaymentSignature
		}
		return nil, "", ErrPaymentPayloadInvalid
	}
	log := logger.S().With(
		"event_id", result.EventID,
		"event_type", result.EventType,
		"provider_ref", result.ProviderRef,
	)

	payment, err := s.resolveWebhookPayment(result)
	if err != nil {
		log.Errorw("payment_webhook_lookup_failed", "error", err)
		return nil, result.EventType, err
	}
	if payment == nil {
		// Events for unknown payments are acknowledged so Stripe
		// stops retrying them.
		log.Infow("payment_webhook_payment_not_found")
		return nil, result.EventType, nil
	}

	order, err := s.orderRepo.GetByID(payment.OrderID)
	if err != nil {
		return nil, result.EventType, err
	}
	if order == nil {
		log.Warnw("payment_webhook_order_missing", "order_id", payment.OrderID)
		return nil, result.EventType, ErrOrderNotFound
	}
	if result.OrderNo != "" && result.OrderNo != order.OrderNo {
		log.Warnw("payment_webhook_order_no_mismatch",
			"stored_order_no", order.OrderNo,
			"event_order_no", result.OrderNo,
		)
		return nil, result.EventType, ErrPaymentPayloadInvalid
	}
	if result.Amount != "" && result.Currency != "" {
		if !strings.EqualFold(result.Currency, payment.Currency) {
			log.Warnw("payment_webhook_currency_mismatch",
				"stored_currency", payment.Currency,
				"event_currency", result.Currency,
			)
			return nil, result.EventType, ErrPaymentPayloadInvalid
		}
		if result.Amount != payment.Amount.String() {
			log.Warnw("payment_webhook_amount_mismatch",
				"stored_amount", payment.Amount.String(),
				"event_amount", result.Amount,
			)
			return nil, result.EventType, ErrPaymentPayloadInvalid
		}
	}

	status := mapGatewayStatus(result.Status)

	// Settled payments never move backwards; repeated success events
	// are no-ops.
	if payment.Status == constants.PaymentStatusSucceeded && status != constants.PaymentStatusDisputed {
		log.Infow("payment_webhook_idempotent", "current_status", payment.Status)
		return payment, result.EventType, nil
	}
	if payment.Status == status {
		log.Infow("payment_webhook_idempotent", "current_status", payment.Status)
		return payment, result.EventType, nil
	}

	updated, err := s.applyWebhookUpdate(payment, order, status, result)
	if err != nil {
		log.Errorw("payment_webhook_apply_failed", "error", err)
		return nil, result.EventType, err
	}
	log.Infow("payment_webhook_processed",
		"payment_id", updated.ID,
		"order_no", order.OrderNo,
		"status", updated.Status,
	)
	s.notifyOrderStatus(order.ID, status)
	return updated, result.EventType, nil
}

func (s *PaymentService) resolveWebhookPayment(result *stripe.WebhookResult) (*models.Payment, error) {
	if result.PaymentID != 0 {
		payment, err := s.paymentRepo.GetByID(result.PaymentID)
		if err != nil {
			return nil, err
		}
		if payment != nil {
			return payment, nil
		}
	}
	candidates := []string{result.SessionID, result.PaymentIntentID, result.ProviderRef}
	for _, ref := range candidates {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		payment, err := s.paymentRepo.GetByProviderRef(constants.PaymentProviderStripe, ref)
		if err != nil {
			return nil, err
		}
		if payment != nil {
			return payment, nil
		}
	}
	return nil, nil
}

func (s *PaymentService) applyWebhookUpdate(payment *models.Payment, order *models.Order, status string, result *stripe.WebhookResult) (*models.Payment, error) {
	now := time.Now()
	payment.Status = status
	payment.CallbackAt = &now
	if result.ProviderRef != "" {
		payment.ProviderRef = result.ProviderRef
	}
	if result.Raw != nil {
		payment.ProviderPayload = models.JSON(result.Raw)
	}
	if result.FailureReason != "" {
		payment.FailureReason = result.FailureReason
	}
	switch status {
	case constants.PaymentStatusSucceeded:
		paidAt := now
		if result.PaidAt != nil {
			paidAt = *result.PaidAt
		}
		payment.PaidAt = &paidAt
	case constants.PaymentStatusFailed:
		if payment.FailureReason == "" {
			payment.FailureReason = "payment " + result.Status
		}
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		paymentRepo := s.paymentRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		if err := paymentRepo.Update(payment); err != nil {
			return err
		}
		switch status {
		case constants.PaymentStatusSucceeded:
			if order.Status == constants.OrderStatusPending {
				return orderRepo.UpdateStatus(order.ID, constants.OrderStatusPaid, map[string]interface{}{
					"paid_at": payment.PaidAt,
				})
			}
		case constants.PaymentStatusDisputed:
			if CanTransition(order.Status, constants.OrderStatusDisputed) {
				return orderRepo.UpdateStatus(order.ID, constants.OrderStatusDisputed, nil)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) notifyOrderStatus(orderID uint, paymentStatus string) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	orderStatus := ""
	switch paymentStatus {
	case constants.PaymentStatusSucceeded:
		orderStatus = constants.OrderStatusPaid
	case constants.PaymentStatusDisputed:
		orderStatus = constants.OrderStatusDisputed
	default:
		return
	}
	if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: orderID,
		Status:  orderStatus,
	}); err != nil {
		logger.Errorw("payment_enqueue_status_notify_failed",
			"order_id", orderID,
			"status", orderStatus,
			"error", err,
		)
	}
}

// mapGatewayStatus translates gateway statuses into payment statuses.
// Expired checkout sessions record a failed attempt; order expiry is
// handled by the timeout worker.
func mapGatewayStatus(gatewayStatus string) string {
	switch gatewayStatus {
	case stripe.StatusSucceeded:
		return constants.PaymentStatusSucceeded
	case stripe.StatusFailed, stripe.StatusExpired:
		return constants.PaymentStatusFailed
	case stripe.StatusDisputed:
		return constants.PaymentStatusDisputed
	default:
		return constants.PaymentStatusPending
	}
}
