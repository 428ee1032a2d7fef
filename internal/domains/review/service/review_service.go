package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	catalogmodel "storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/review/model"
	"storefront-backend/internal/domains/review/repository"
)

// ProductChecker verifies the reviewed product exists.
type ProductChecker interface {
	GetProductByID(ctx context.Context, productID uuid.UUID) (*catalogmodel.Product, error)
}

// =====================================================
// REVIEW SERVICE IMPLEMENTATION
// =====================================================
type reviewService struct {
	reviewRepo repository.ReviewRepository
	products   ProductChecker
}

func NewReviewService(reviewRepo repository.ReviewRepository, products ProductChecker) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		products:   products,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewReviewError(model.ErrCodeInvalidReview, "Invalid review", err)
	}

	if _, err := s.products.GetProductByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	review := &model.Review{
		ID:        uuid.New(),
		ProductID: req.ProductID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.reviewRepo.CreateReview(ctx, review); err != nil {
		if errors.Is(err, model.ErrAlreadyReviewed) {
			return nil, model.NewReviewError(model.ErrCodeAlreadyReviewed, "You have already reviewed this product", err)
		}
		return nil, err
	}

	return review, nil
}

func (s *reviewService) ListProductReviews(ctx context.Context, productID uuid.UUID) (*model.ProductReviews, error) {
	return s.reviewRepo.ListReviewsByProduct(ctx, productID)
}
