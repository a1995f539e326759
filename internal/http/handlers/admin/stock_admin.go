package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/handlers/shared"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// RestockVariant adds units to a variant and records the ledger row.
func (h *Handler) RestockVariant(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	variantID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid variant id")
		return
	}
	var req struct {
		Quantity int    `json:"quantity" binding:"required"`
		Note     string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	variant, err := h.StockService.Restock(variantID, req.Quantity, adminID, req.Note)
	if err != nil {
		respondStockError(c, err)
		return
	}
	response.Success(c, variant)
}

// AdjustVariantStock applies a signed correction to a variant.
func (h *Handler) AdjustVariantStock(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	variantID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid variant id")
		return
	}
	var req struct {
		Delta int    `json:"delta" binding:"required"`
		Note  string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	variant, err := h.StockService.Adjust(variantID, req.Delta, adminID, req.Note)
	if err != nil {
		respondStockError(c, err)
		return
	}
	response.Success(c, variant)
}

// ListStockMovements pages through the append-only stock ledger.
func (h *Handler) ListStockMovements(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	variantID, _ := strconv.ParseUint(c.Query("variant_id"), 10, 64)
	orderID, _ := strconv.ParseUint(c.Query("order_id"), 10, 64)

	movements, total, err := h.StockService.ListMovements(repository.StockMovementListFilter{
		Page:      page,
		PageSize:  pageSize,
		VariantID: uint(variantID),
		OrderID:   uint(orderID),
		Type:      c.Query("type"),
		Actor:     c.Query("actor"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "stock movement list failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"items": movements}, response.NewPagination(page, pageSize, total))
}

// VerifyStockLedger checks that the movement sum matches the variant's
// stock on hand.
func (h *Handler) VerifyStockLedger(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	variantID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid variant id")
		return
	}
	consistent, ledgerSum, stockOnHand, err := h.StockService.VerifyLedger(variantID)
	if err != nil {
		respondStockError(c, err)
		return
	}
	response.Success(c, gin.H{
		"variant_id":    variantID,
		"consistent":    consistent,
		"ledger_sum":    ledgerSum,
		"stock_on_hand": stockOnHand,
	})
}

func respondStockError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVariantNotFound):
		respondError(c, response.CodeNotFound, "variant not found", nil)
	case errors.Is(err, service.ErrInvalidStockOperation):
		respondError(c, response.CodeBadRequest, "invalid stock operation", nil)
	case errors.Is(err, service.ErrInsufficientStock):
		respondError(c, response.CodeConflict, "stock cannot go below zero", nil)
	default:
		respondError(c, response.CodeInternal, "stock operation failed", err)
	}
}
