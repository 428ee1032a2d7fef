package service

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW SERVICE INTERFACE
// =====================================================
type ReviewService interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error)
	ListProductReviews(ctx context.Context, productID uuid.UUID) (*model.ProductReviews, error)
}
