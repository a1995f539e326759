package public

import (
	"errors"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// QuoteShipping prices shipping methods for the active cart.
func (h *Handler) QuoteShipping(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	toPostcode := c.Query("postcode")
	if toPostcode == "" {
		response.BadRequest(c, "postcode is required")
		return
	}
	quotes, err := h.ShippingService.QuoteForCart(c.Request.Context(), uid, toPostcode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			respondError(c, response.CodeBadRequest, "cart is empty", nil)
		case errors.Is(err, service.ErrShippingUnavailable):
			respondError(c, response.CodeInternal, "shipping quote unavailable", nil)
		default:
			respondError(c, response.CodeInternal, "shipping quote failed", err)
		}
		return
	}
	response.Success(c, gin.H{"quotes": quotes})
}

// GetShipment returns tracking info for the user's order.
func (h *Handler) GetShipment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	shipment, err := h.ShippingService.GetShipmentForOrder(c.Param("order_no"), uid)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
			{target: service.ErrShipmentNotFound, code: response.CodeNotFound, msg: "shipment not found"},
		}, response.CodeInternal, "shipment fetch failed")
		return
	}
	response.Success(c, shipment)
}
