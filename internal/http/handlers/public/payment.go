package public

import (
	"errors"
	"io"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody caps the webhook payload read.
const maxWebhookBody = 1 << 20

// CreatePayment returns the hosted checkout URL for a pending order.
func (h *Handler) CreatePayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	payment, err := h.PaymentService.CreateCheckoutSession(c.Request.Context(), c.Param("order_no"), uid)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
			{target: service.ErrPaymentNotFound, code: response.CodeNotFound, msg: "payment not found"},
			{target: service.ErrOrderStateConflict, code: response.CodeConflict, msg: "order is not payable"},
			{target: service.ErrPaymentProviderDisabled, code: response.CodeInternal, msg: "payments unavailable"},
		}, response.CodeInternal, "payment create failed")
		return
	}
	response.Success(c, gin.H{
		"payment_id":   payment.ID,
		"checkout_url": payment.CheckoutURL,
		"status":       payment.Status,
	})
}

// GetPayment returns the latest payment attempt for the user's order.
func (h *Handler) GetPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	payment, err := h.PaymentService.GetPaymentForOrder(c.Param("order_no"), uid)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
			{target: service.ErrPaymentNotFound, code: response.CodeNotFound, msg: "payment not found"},
		}, response.CodeInternal, "payment fetch failed")
		return
	}
	response.Success(c, payment)
}

// StripeWebhook receives Stripe events. The signature is verified
// before anything is trusted; bad signatures answer 400 so Stripe
// surfaces the misconfiguration.
func (h *Handler) StripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.String(400, "read failed")
		return
	}
	signature := c.GetHeader("Stripe-Signature")
	_, eventType, err := h.PaymentService.HandleStripeWebhook(signature, body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentSignature):
			c.String(400, "signature verification failed")
		case errors.Is(err, service.ErrPaymentPayloadInvalid):
			c.String(400, "invalid payload")
		default:
			// 5xx makes Stripe retry transient failures.
			c.String(500, "webhook processing failed")
		}
		return
	}
	c.JSON(200, gin.H{"received": true, "type": eventType})
}
