package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RepositoryInterface adjusts product stock. Both mutations run inside
// the caller's transaction so a failure anywhere in checkout rolls back
// every reservation made so far.
type RepositoryInterface interface {
	// ReserveStockWithTx decrements stock atomically and returns the new
	// quantity. Fails with model.ErrInsufficientStock when the product
	// holds less than qty.
	ReserveStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (int, error)

	// ReleaseStockWithTx increments stock unconditionally (restock on
	// cancellation) and returns the new quantity.
	ReleaseStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (int, error)

	// BeginTx is used by service-level operations (admin restock) that
	// own their transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)
	CommitTx(ctx context.Context, tx pgx.Tx) error
	RollbackTx(ctx context.Context, tx pgx.Tx) error
}
