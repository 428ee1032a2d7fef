package service

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/catalog/model"
)

// ServiceInterface is the catalog business logic contract
type ServiceInterface interface {
	ListActiveProducts(ctx context.Context) ([]model.ProductResponse, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*model.ProductResponse, error)
	ListCategories(ctx context.Context) ([]model.CategoryWithUnits, error)

	// Admin operations
	CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.ProductResponse, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, req model.UpdateProductRequest) (*model.ProductResponse, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}
