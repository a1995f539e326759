package public

import (
	"time"

	handlershared "github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/handlers/shared"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListOrders returns the user's orders, newest first.
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	orders, total, err := h.OrderService.ListOrdersByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"items": orders}, response.NewPagination(page, pageSize, total))
}

// GetOrder returns one of the user's orders by order number.
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderByUserOrderNo(c.Param("order_no"), uid)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "order fetch failed")
		return
	}
	response.Success(c, order)
}

// CancelOrder cancels the user's own pending order and releases its
// reserved stock.
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderByUserOrderNo(c.Param("order_no"), uid)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "order cancel failed")
		return
	}
	cancelled, err := h.OrderService.CancelOrder(order.ID, uid)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "order cancel failed")
		return
	}
	handlershared.RequestLog(c).Infow("order_cancelled_by_user",
		"order_no", cancelled.OrderNo,
		"user_id", uid,
		"cancelled_at", time.Now(),
	)
	response.Success(c, cancelled)
}
