package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// CACHE KEYS
// =====================================================
// Cache invalidation is never performed inside business methods.
// Services that mutate stock or product data collect these keys and
// evict them after their transaction commits.
const (
	ActiveProductsCacheKey = "products:active"
	ActiveProductsCacheTTL = 5 * time.Minute
	ProductCacheTTL        = 5 * time.Minute
)

// ProductCacheKey returns the per-product detail cache key
func ProductCacheKey(productID uuid.UUID) string {
	return "product:" + productID.String()
}

// =====================================================
// ENTITY: Product
// =====================================================
type Product struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	SalePercent int             `json:"sale_percent"` // 0-100
	ImageURL    *string         `json:"image_url,omitempty"`
	Quantity    int             `json:"quantity"` // never negative
	Description *string         `json:"description,omitempty"`
	Origin      *string         `json:"origin,omitempty"`
	IsActive    bool            `json:"is_active"`
	IsDeleted   bool            `json:"is_deleted"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EffectivePrice returns the unit price after the sale percentage
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePercent <= 0 {
		return p.Price
	}
	factor := decimal.NewFromInt(int64(100 - p.SalePercent)).Div(decimal.NewFromInt(100))
	return p.Price.Mul(factor)
}

// Purchasable reports whether the product can appear in a checkout
func (p *Product) Purchasable() bool {
	return p.IsActive && !p.IsDeleted
}

// =====================================================
// ENTITY: Category / Unit
// =====================================================
type Category struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	IsActive bool      `json:"is_active"`
}

type Unit struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	IsActive bool      `json:"is_active"` // active flag of the category membership
}

// CategoryWithUnits is a category together with the units attached to
// it through the category_units join table.
type CategoryWithUnits struct {
	Category
	Units []Unit `json:"units"`
}
