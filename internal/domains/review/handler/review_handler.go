package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogmodel "storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/review/model"
	"storefront-backend/internal/domains/review/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// =====================================================
// REVIEW HANDLER
// =====================================================
type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReview POST /products/:id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Product ID must be a valid UUID")
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	req.ProductID = productID

	review, err := h.reviewService.CreateReview(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Review created", review)
}

// ListProductReviews GET /products/:id/reviews
func (h *ReviewHandler) ListProductReviews(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Product ID must be a valid UUID")
		return
	}

	reviews, err := h.reviewService.ListProductReviews(c.Request.Context(), productID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Reviews retrieved", reviews)
}

// handleServiceError maps review errors to HTTP responses
func (h *ReviewHandler) handleServiceError(c *gin.Context, err error) {
	var rvwErr *model.ReviewError
	if errors.As(err, &rvwErr) {
		status := http.StatusUnprocessableEntity
		if rvwErr.Code == model.ErrCodeAlreadyReviewed {
			status = http.StatusConflict
		}
		response.ErrorWithDetails(c, status, rvwErr.Code, rvwErr.Message, nil)
		return
	}

	switch {
	case errors.Is(err, catalogmodel.ErrProductNotFound):
		response.NotFound(c, "Product not found")
	case errors.Is(err, model.ErrReviewNotFound):
		response.NotFound(c, "Review not found")
	default:
		logger.Error("Unexpected review error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
