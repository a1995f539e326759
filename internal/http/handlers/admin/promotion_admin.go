package admin

import (
	"errors"
	"time"

	handlershared "github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/handlers/shared"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// PromotionRequest creates or updates a promotion.
type PromotionRequest struct {
	Name      string       `json:"name" binding:"required"`
	Code      string       `json:"code" binding:"required"`
	Type      string       `json:"type" binding:"required"`
	Value     models.Money `json:"value" binding:"required"`
	MinAmount models.Money `json:"min_amount"`
	MaxUses   int          `json:"max_uses"`
	StartsAt  *time.Time   `json:"starts_at"`
	EndsAt    *time.Time   `json:"ends_at"`
	IsActive  bool         `json:"is_active"`
}

// ListPromotions lists promotions.
func (h *Handler) ListPromotions(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	promotions, total, err := h.PromotionService.List(c.Query("active") == "1", page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "promotion list failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"items": promotions}, response.NewPagination(page, pageSize, total))
}

// CreatePromotion inserts a promotion.
func (h *Handler) CreatePromotion(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	promotion := req.toModel(0)
	if err := h.PromotionService.Create(promotion); err != nil {
		respondPromotionError(c, err)
		return
	}
	response.Success(c, promotion)
}

// UpdatePromotion saves a promotion.
func (h *Handler) UpdatePromotion(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	promotionID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid promotion id")
		return
	}
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	promotion := req.toModel(promotionID)
	if err := h.PromotionService.Update(promotion); err != nil {
		respondPromotionError(c, err)
		return
	}
	response.Success(c, promotion)
}

// DeletePromotion removes a promotion.
func (h *Handler) DeletePromotion(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	promotionID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid promotion id")
		return
	}
	if err := h.PromotionService.Delete(promotionID); err != nil {
		respondPromotionError(c, err)
		return
	}
	response.Success(c, nil)
}

func (r PromotionRequest) toModel(id uint) *models.Promotion {
	return &models.Promotion{
		ID:        id,
		Name:      r.Name,
		Code:      r.Code,
		Type:      r.Type,
		Value:     r.Value,
		MinAmount: r.MinAmount,
		MaxUses:   r.MaxUses,
		StartsAt:  r.StartsAt,
		EndsAt:    r.EndsAt,
		IsActive:  r.IsActive,
	}
}

func respondPromotionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPromotionNotFound):
		respondError(c, response.CodeNotFound, "promotion not found", nil)
	case errors.Is(err, service.ErrPromotionInvalid):
		respondError(c, response.CodeBadRequest, "invalid promotion data", nil)
	default:
		respondError(c, response.CodeInternal, "promotion operation failed", err)
	}
}
