package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW REPOSITORY INTERFACE
// =====================================================
type ReviewRepository interface {
	CreateReview(ctx context.Context, review *model.Review) error
	ListReviewsByProduct(ctx context.Context, productID uuid.UUID) (*model.ProductReviews, error)
}
