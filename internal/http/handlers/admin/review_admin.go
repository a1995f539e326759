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

// ListReviews pages through reviews in any moderation state.
func (h *Handler) ListReviews(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	productID, _ := strconv.ParseUint(c.Query("product_id"), 10, 64)
	reviews, total, err := h.ReviewService.ListForAdmin(repository.ReviewListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: uint(productID),
		Status:    c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "review list failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"items": reviews}, response.NewPagination(page, pageSize, total))
}

// ModerateReview approves or rejects a pending review.
func (h *Handler) ModerateReview(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	reviewID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid review id")
		return
	}
	var req struct {
		Approve *bool `json:"approve" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	review, err := h.ReviewService.Moderate(reviewID, *req.Approve)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			respondError(c, response.CodeNotFound, "review not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "review moderation failed", err)
		return
	}
	response.Success(c, review)
}
