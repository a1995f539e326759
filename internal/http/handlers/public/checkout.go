package public

import (
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest converts the active cart into an order.
type CheckoutRequest struct {
	AddressID      uint   `json:"address_id" binding:"required"`
	ShippingMethod string `json:"shipping_method" binding:"required"`
	PromotionCode  string `json:"promotion_code"`
}

// Checkout places an order from the user's cart. On success the
// response carries the order and its pending payment.
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	result, err := h.CheckoutService.PlaceOrder(service.CheckoutInput{
		UserID:         uid,
		AddressID:      req.AddressID,
		ShippingMethod: req.ShippingMethod,
		PromotionCode:  req.PromotionCode,
		ClientIP:       c.ClientIP(),
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, gin.H{
		"order":   result.Order,
		"payment": result.Payment,
	})
}

// PreviewPromotion prices a promotion code against a subtotal without
// consuming a use.
func (h *Handler) PreviewPromotion(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}
	var req struct {
		Code     string `json:"code" binding:"required"`
		Subtotal string `json:"subtotal" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	subtotal, err := parseAmount(req.Subtotal)
	if err != nil {
		response.BadRequest(c, "invalid subtotal")
		return
	}
	preview, err := h.PromotionService.Preview(req.Code, subtotal)
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "promotion preview failed")
		return
	}
	response.Success(c, preview)
}
