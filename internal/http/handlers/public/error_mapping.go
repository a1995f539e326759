package public

import (
	"errors"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError binds a service error to an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrCartItemInvalid, code: response.CodeBadRequest, msg: "invalid cart item"},
	{target: service.ErrVariantNotFound, code: response.CodeNotFound, msg: "variant not found"},
	{target: service.ErrVariantUnavailable, code: response.CodeBadRequest, msg: "variant unavailable"},
	{target: service.ErrCartNotFound, code: response.CodeNotFound, msg: "no active cart"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartNotFound, code: response.CodeNotFound, msg: "no active cart"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrAddressNotFound, code: response.CodeBadRequest, msg: "shipping address invalid"},
	{target: service.ErrShipmentInvalid, code: response.CodeBadRequest, msg: "invalid shipping method"},
	{target: service.ErrVariantUnavailable, code: response.CodeBadRequest, msg: "item no longer available"},
	{target: service.ErrPromotionNotFound, code: response.CodeBadRequest, msg: "promotion code not found"},
	{target: service.ErrPromotionNotActive, code: response.CodeBadRequest, msg: "promotion not active"},
	{target: service.ErrPromotionMinAmount, code: response.CodeBadRequest, msg: "order below promotion minimum"},
	{target: service.ErrPromotionExhausted, code: response.CodeBadRequest, msg: "promotion already used"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderStateConflict, code: response.CodeConflict, msg: "order state conflict"},
}

// respondCheckoutError answers checkout failures; stock shortfalls
// carry the requested/available detail so the storefront can adjust
// the cart in place.
func respondCheckoutError(c *gin.Context, err error) {
	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		response.ErrorWithData(c, response.CodeBadRequest, "insufficient stock", gin.H{
			"variant_id": stockErr.VariantID,
			"sku":        stockErr.SKU,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
		})
		return
	}
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "checkout failed")
}
