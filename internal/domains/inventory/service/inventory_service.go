package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	catalogModel "storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/inventory/model"
	"storefront-backend/internal/domains/inventory/repository"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

// =====================================================
// INVENTORY SERVICE IMPLEMENTATION
// =====================================================
type inventoryService struct {
	inventoryRepo repository.RepositoryInterface
	cache         cache.Cache
}

func NewInventoryService(inventoryRepo repository.RepositoryInterface, c cache.Cache) ServiceInterface {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		cache:         c,
	}
}

func (s *inventoryService) ReserveWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (int, error) {
	remaining, err := s.inventoryRepo.ReserveStockWithTx(ctx, tx, productID, qty)
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func (s *inventoryService) ReleaseWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (int, error) {
	remaining, err := s.inventoryRepo.ReleaseStockWithTx(ctx, tx, productID, qty)
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// Restock is the admin-facing stock top-up. It owns its transaction
// and evicts catalog caches only after a successful commit.
func (s *inventoryService) Restock(ctx context.Context, productID uuid.UUID, qty int) (int, error) {
	if qty <= 0 {
		return 0, model.NewInventoryError(model.ErrCodeInvalidQuantity, "Restock quantity must be positive", model.ErrInvalidQuantity)
	}

	tx, err := s.inventoryRepo.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.inventoryRepo.RollbackTx(ctx, tx)

	remaining, err := s.inventoryRepo.ReleaseStockWithTx(ctx, tx, productID, qty)
	if err != nil {
		return 0, err
	}

	if err := s.inventoryRepo.CommitTx(ctx, tx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Post-commit only: an eviction before commit could cache a state
	// that is about to be rolled back.
	if err := s.cache.Delete(ctx, catalogModel.ActiveProductsCacheKey, catalogModel.ProductCacheKey(productID)); err != nil {
		logger.Error("Failed to evict product caches after restock", err)
	}

	return remaining, nil
}
