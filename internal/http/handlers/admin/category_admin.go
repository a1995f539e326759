package admin

import (
	"errors"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest creates or updates a category.
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	ParentID  *uint  `json:"parent_id"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

// ListCategories lists all categories including inactive ones.
func (h *Handler) ListCategories(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	categories, err := h.CategoryService.List(c.Request.Context(), false)
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, gin.H{"items": categories})
}

// CreateCategory inserts a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	category := &models.Category{
		Slug:      req.Slug,
		Name:      req.Name,
		ParentID:  req.ParentID,
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
	}
	if err := h.CategoryService.Create(category); err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory saves a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	categoryID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid category id")
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	category := &models.Category{
		ID:        categoryID,
		Slug:      req.Slug,
		Name:      req.Name,
		ParentID:  req.ParentID,
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
	}
	if err := h.CategoryService.Update(category); err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	categoryID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid category id")
		return
	}
	if err := h.CategoryService.Delete(categoryID); err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondCategoryError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrCategoryNotFound) {
		respondError(c, response.CodeNotFound, "category not found", nil)
		return
	}
	respondError(c, response.CodeInternal, "category operation failed", err)
}
