package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/handlers/shared"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductVariantRequest is one variant in a create request.
type ProductVariantRequest struct {
	SKU          string       `json:"sku" binding:"required"`
	SpecValues   models.JSON  `json:"spec_values"`
	Price        models.Money `json:"price" binding:"required"`
	InitialStock int          `json:"initial_stock"`
	WeightGrams  int          `json:"weight_grams"`
	IsActive     bool         `json:"is_active"`
	SortOrder    int          `json:"sort_order"`
}

// ProductCreateRequest creates a product with its variants.
type ProductCreateRequest struct {
	CategoryID  uint                    `json:"category_id" binding:"required"`
	Slug        string                  `json:"slug" binding:"required"`
	Name        string                  `json:"name" binding:"required"`
	Description string                  `json:"description"`
	Content     string                  `json:"content"`
	Images      []string                `json:"images"`
	Tags        []string                `json:"tags"`
	BasePrice   models.Money            `json:"base_price"`
	IsFeatured  bool                    `json:"is_featured"`
	IsActive    bool                    `json:"is_active"`
	SortOrder   int                     `json:"sort_order"`
	Variants    []ProductVariantRequest `json:"variants" binding:"required,min=1"`
}

// ListProducts lists the full catalog including inactive products.
func (h *Handler) ListProducts(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		Search:       c.Query("search"),
		WithVariants: true,
		WithCategory: true,
		OrderBy:      c.Query("order_by"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"items": products}, response.NewPagination(page, pageSize, total))
}

// GetProduct returns any product by id.
func (h *Handler) GetProduct(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	productID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid product id")
		return
	}
	product, err := h.ProductService.GetForAdmin(productID)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct inserts a product with variants and opening stock.
func (h *Handler) CreateProduct(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	input := service.ProductCreateInput{
		CategoryID:  req.CategoryID,
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
		Images:      req.Images,
		Tags:        req.Tags,
		BasePrice:   req.BasePrice,
		IsFeatured:  req.IsFeatured,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	}
	for _, v := range req.Variants {
		input.Variants = append(input.Variants, service.ProductVariantInput{
			SKU:          v.SKU,
			SpecValues:   v.SpecValues,
			Price:        v.Price,
			InitialStock: v.InitialStock,
			WeightGrams:  v.WeightGrams,
			IsActive:     v.IsActive,
			SortOrder:    v.SortOrder,
		})
	}
	product, err := h.ProductService.Create(input, adminID)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct saves catalog fields. Stock changes go through the
// stock endpoints so the ledger stays complete.
func (h *Handler) UpdateProduct(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	productID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid product id")
		return
	}
	product, err := h.ProductService.GetForAdmin(productID)
	if err != nil {
		respondProductError(c, err)
		return
	}
	var req struct {
		CategoryID  *uint         `json:"category_id"`
		Name        *string       `json:"name"`
		Description *string       `json:"description"`
		Content     *string       `json:"content"`
		Images      []string      `json:"images"`
		Tags        []string      `json:"tags"`
		BasePrice   *models.Money `json:"base_price"`
		IsFeatured  *bool         `json:"is_featured"`
		IsActive    *bool         `json:"is_active"`
		SortOrder   *int          `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Content != nil {
		product.Content = *req.Content
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	if req.BasePrice != nil {
		product.BasePrice = *req.BasePrice
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		product.SortOrder = *req.SortOrder
	}
	if err := h.ProductService.Update(product); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct soft-deletes a product and its variants.
func (h *Handler) DeleteProduct(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	productID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid product id")
		return
	}
	if err := h.ProductService.Delete(productID); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrProductUnavailable):
		respondError(c, response.CodeBadRequest, "invalid product data", nil)
	case errors.Is(err, service.ErrVariantUnavailable):
		respondError(c, response.CodeBadRequest, "invalid variant data", nil)
	default:
		respondError(c, response.CodeInternal, "product operation failed", err)
	}
}
