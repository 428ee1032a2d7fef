package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ServiceInterface is the inventory business logic contract
type ServiceInterface interface {
	// ReserveWithTx decrements stock inside the caller's transaction
	ReserveWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (int, error)

	// ReleaseWithTx restocks inside the caller's transaction
	ReleaseWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (int, error)

	// Restock adds stock in its own transaction (admin action) and
	// evicts catalog caches after commit.
	Restock(ctx context.Context, productID uuid.UUID, qty int) (int, error)
}
