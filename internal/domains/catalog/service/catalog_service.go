package service

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/catalog/repository"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

// =====================================================
// CATALOG SERVICE IMPLEMENTATION
// =====================================================
type catalogService struct {
	catalogRepo repository.CatalogRepository
	cache       cache.Cache
}

func NewCatalogService(catalogRepo repository.CatalogRepository, c cache.Cache) ServiceInterface {
	return &catalogService{
		catalogRepo: catalogRepo,
		cache:       c,
	}
}

// ListActiveProducts serves the product listing, cache-first
func (s *catalogService) ListActiveProducts(ctx context.Context) ([]model.ProductResponse, error) {
	var cached []model.ProductResponse
	found, err := s.cache.Get(ctx, model.ActiveProductsCacheKey, &cached)
	if err != nil {
		// Cache trouble is not a reason to fail the listing
		logger.Error("Failed to read active products cache", err)
	}
	if found {
		return cached, nil
	}

	products, err := s.catalogRepo.ListActiveProducts(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]model.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, model.BuildProductResponse(&products[i]))
	}

	if err := s.cache.Set(ctx, model.ActiveProductsCacheKey, responses, model.ActiveProductsCacheTTL); err != nil {
		logger.Error("Failed to cache active products", err)
	}

	return responses, nil
}

// GetProduct serves a product detail, cache-first
func (s *catalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*model.ProductResponse, error) {
	key := model.ProductCacheKey(productID)

	var cached model.ProductResponse
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Error("Failed to read product cache", err)
	}
	if found {
		return &cached, nil
	}

	product, err := s.catalogRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	resp := model.BuildProductResponse(product)
	if err := s.cache.Set(ctx, key, resp, model.ProductCacheTTL); err != nil {
		logger.Error("Failed to cache product", err)
	}

	return &resp, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.CategoryWithUnits, error) {
	return s.catalogRepo.ListCategoriesWithUnits(ctx)
}

// =====================================================
// ADMIN OPERATIONS
// =====================================================

func (s *catalogService) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewCatalogError(model.ErrCodeInvalidProduct, "Invalid product", err)
	}

	product := &model.Product{
		ID:          uuid.New(),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		SalePercent: req.SalePercent,
		ImageURL:    req.ImageURL,
		Quantity:    req.Quantity,
		Description: req.Description,
		Origin:      req.Origin,
		IsActive:    true,
	}

	if err := s.catalogRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.evictProductCaches(ctx, product.ID)

	resp := model.BuildProductResponse(product)
	return &resp, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, productID uuid.UUID, req model.UpdateProductRequest) (*model.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewCatalogError(model.ErrCodeInvalidProduct, "Invalid product update", err)
	}

	product, err := s.catalogRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.SalePercent != nil {
		product.SalePercent = *req.SalePercent
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Origin != nil {
		product.Origin = req.Origin
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.catalogRepo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.evictProductCaches(ctx, productID)

	resp := model.BuildProductResponse(product)
	return &resp, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := s.catalogRepo.SoftDeleteProduct(ctx, productID); err != nil {
		return err
	}

	s.evictProductCaches(ctx, productID)
	return nil
}

// evictProductCaches drops the listing key and the per-product key.
// Best effort: staleness resolves at TTL.
func (s *catalogService) evictProductCaches(ctx context.Context, productID uuid.UUID) {
	if err := s.cache.Delete(ctx, model.ActiveProductsCacheKey, model.ProductCacheKey(productID)); err != nil {
		logger.Error("Failed to evict product caches", err)
	}
}
