package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/catalog/model"
)

// =====================================================
// CATALOG REPOSITORY INTERFACE
// =====================================================
type CatalogRepository interface {
	// Product operations
	GetProductByID(ctx context.Context, productID uuid.UUID) (*model.Product, error)
	// GetProductByIDForUpdate locks the product row for the duration of
	// the caller's transaction. Used by checkout to re-price server-side
	// and serialize concurrent stock checks.
	GetProductByIDForUpdate(ctx context.Context, tx pgx.Tx, productID uuid.UUID) (*model.Product, error)
	ListActiveProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProduct(ctx context.Context, product *model.Product) error
	SoftDeleteProduct(ctx context.Context, productID uuid.UUID) error

	// Category operations
	ListCategoriesWithUnits(ctx context.Context) ([]model.CategoryWithUnits, error)
}
