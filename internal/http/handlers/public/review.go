package public

import (
	handlershared "github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/handlers/shared"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ListReviews returns approved reviews for a product.
func (h *Handler) ListReviews(c *gin.Context) {
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		response.BadRequest(c, "invalid product id")
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	reviews, total, err := h.ReviewService.ListApproved(productID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "review list failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"items": reviews}, response.NewPagination(page, pageSize, total))
}

// SubmitReview files a review for a delivered purchase. It enters the
// moderation queue as pending.
func (h *Handler) SubmitReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req struct {
		ProductID uint   `json:"product_id" binding:"required"`
		Rating    int    `json:"rating" binding:"required"`
		Title     string `json:"title"`
		Body      string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	review, err := h.ReviewService.Submit(uid, req.ProductID, req.Rating, req.Title, req.Body)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
			{target: service.ErrReviewInvalidRating, code: response.CodeBadRequest, msg: "rating must be between 1 and 5"},
			{target: service.ErrReviewDuplicate, code: response.CodeConflict, msg: "review already submitted"},
			{target: service.ErrReviewNotPurchased, code: response.CodeForbidden, msg: "only delivered purchases can be reviewed"},
		}, response.CodeInternal, "review submit failed")
		return
	}
	response.Success(c, review)
}
