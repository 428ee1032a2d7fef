package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// ENTITY: Review
// =====================================================
// One review per user per product, enforced by a unique index on
// (user_id, product_id).
type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"` // 1-5
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductReviews is a product's review list with its aggregate rating.
type ProductReviews struct {
	AverageRating float64  `json:"average_rating"`
	Count         int      `json:"count"`
	Reviews       []Review `json:"reviews"`
}
