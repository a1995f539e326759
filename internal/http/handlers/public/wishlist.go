package public

import (
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ListWishlist returns the user's saved products.
func (h *Handler) ListWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	items, err := h.WishlistService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "wishlist fetch failed", err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// AddWishlistItem saves a product.
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.WishlistService.Add(uid, req.ProductID); err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
			{target: service.ErrWishlistDuplicate, code: response.CodeConflict, msg: "already in wishlist"},
		}, response.CodeInternal, "wishlist update failed")
		return
	}
	response.Success(c, nil)
}

// RemoveWishlistItem unsaves a product.
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		response.BadRequest(c, "invalid product id")
		return
	}
	if err := h.WishlistService.Remove(uid, productID); err != nil {
		respondError(c, response.CodeInternal, "wishlist update failed", err)
		return
	}
	response.Success(c, nil)
}
