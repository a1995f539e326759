package admin

import (
	"strconv"

	handlershared "github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/handlers/shared"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListPayments pages through payment attempts.
func (h *Handler) ListPayments(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	orderID, _ := strconv.ParseUint(c.Query("order_id"), 10, 64)
	payments, total, err := h.PaymentService.ListPaymentsForAdmin(repository.PaymentListFilter{
		Page:     page,
		PageSize: pageSize,
		OrderID:  uint(orderID),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "payment list failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"items": payments}, response.NewPagination(page, pageSize, total))
}
