package public

import (
	"strconv"

	handlershared "github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/handlers/shared"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts serves the storefront catalog listing.
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		Search:       c.Query("search"),
		Tag:          c.Query("tag"),
		OnlyActive:   true,
		OnlyFeatured: c.Query("featured") == "1",
		WithVariants: true,
		OrderBy:      c.Query("order_by"),
	}
	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"items": products}, response.NewPagination(page, pageSize, total))
}

// GetProduct serves the storefront product detail page.
func (h *Handler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")
	detail, err := h.ProductService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
		}, response.CodeInternal, "product fetch failed")
		return
	}
	response.Success(c, detail)
}
