package public

import (
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCategories serves the active category tree.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(c.Request.Context(), true)
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, gin.H{"items": categories})
}

// GetCategory serves one category by slug.
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.CategoryService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrCategoryNotFound, code: response.CodeNotFound, msg: "category not found"},
		}, response.CodeInternal, "category fetch failed")
		return
	}
	response.Success(c, category)
}
