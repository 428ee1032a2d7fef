package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogModel "storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/inventory/model"
)

// =====================================================
// MOCKS
// =====================================================

type mockInventoryRepo struct {
	quantity  int
	commits   int
	rollbacks int

	reserveErr error
}

func (m *mockInventoryRepo) ReserveStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (int, error) {
	if m.reserveErr != nil {
		return 0, m.reserveErr
	}
	m.quantity -= qty
	return m.quantity, nil
}

func (m *mockInventoryRepo) ReleaseStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (int, error) {
	m.quantity += qty
	return m.quantity, nil
}

func (m *mockInventoryRepo) BeginTx(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *mockInventoryRepo) CommitTx(ctx context.Context, tx pgx.Tx) error {
	m.commits++
	return nil
}
func (m *mockInventoryRepo) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	m.rollbacks++
	return nil
}

type mockCache struct {
	deleted []string
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	m.deleted = append(m.deleted, keys...)
	return nil
}
func (m *mockCache) Ping(ctx context.Context) error { return nil }

// =====================================================
// TESTS
// =====================================================

func TestRestock(t *testing.T) {
	repo := &mockInventoryRepo{quantity: 5}
	c := &mockCache{}
	svc := NewInventoryService(repo, c)
	productID := uuid.New()

	remaining, err := svc.Restock(context.Background(), productID, 10)
	require.NoError(t, err)

	assert.Equal(t, 15, remaining)
	assert.Equal(t, 1, repo.commits)
	assert.Contains(t, c.deleted, catalogModel.ActiveProductsCacheKey)
	assert.Contains(t, c.deleted, catalogModel.ProductCacheKey(productID))
}

func TestRestockRejectsNonPositiveQuantity(t *testing.T) {
	repo := &mockInventoryRepo{quantity: 5}
	c := &mockCache{}
	svc := NewInventoryService(repo, c)

	for _, qty := range []int{0, -3} {
		_, err := svc.Restock(context.Background(), uuid.New(), qty)
		require.Error(t, err)

		var invErr *model.InventoryError
		require.ErrorAs(t, err, &invErr)
		assert.Equal(t, model.ErrCodeInvalidQuantity, invErr.Code)
	}

	assert.Equal(t, 0, repo.commits)
	assert.Empty(t, c.deleted)
}

func TestReserveWithTxPassesThroughErrors(t *testing.T) {
	repo := &mockInventoryRepo{quantity: 2, reserveErr: model.ErrInsufficientStock}
	svc := NewInventoryService(repo, &mockCache{})

	_, err := svc.ReserveWithTx(context.Background(), nil, uuid.New(), 5)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)
}
