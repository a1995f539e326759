package public

import (
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartItemRequest adds or updates one cart line.
type CartItemRequest struct {
	VariantID uint `json:"variant_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// GetCart returns the user's active cart.
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetCart(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "cart fetch failed", err)
		return
	}
	response.Success(c, cart)
}

// AddCartItem adds a variant to the cart, merging quantities.
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	cart, err := h.CartService.AddItem(uid, req.VariantID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.Success(c, cart)
}

// UpdateCartItem sets a line quantity; zero removes the line.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req struct {
		VariantID uint `json:"variant_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	cart, err := h.CartService.UpdateItem(uid, req.VariantID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.Success(c, cart)
}

// RemoveCartItem deletes one line from the cart.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	variantID, ok := parseUintParam(c, "variant_id")
	if !ok {
		response.BadRequest(c, "invalid variant id")
		return
	}
	cart, err := h.CartService.RemoveItem(uid, variantID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.Success(c, cart)
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondError(c, response.CodeInternal, "cart clear failed", err)
		return
	}
	response.Success(c, nil)
}
