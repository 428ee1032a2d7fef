package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/inventory/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *postgresRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

func (r *postgresRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Rollback(ctx)
}

// ReserveStockWithTx uses a conditional decrement so two concurrent
// reservations against the same product serialize on the row and can
// never oversell.
func (r *postgresRepository) ReserveStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (int, error) {
	if qty <= 0 {
		return 0, model.ErrInvalidQuantity
	}

	query := `
		UPDATE products
		SET quantity = quantity - $2, updated_at = NOW()
		WHERE id = $1 AND is_deleted = false AND quantity >= $2
		RETURNING quantity
	`

	var remaining int
	err := tx.QueryRow(ctx, query, productID, qty).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish missing product from insufficient stock
			var exists bool
			checkErr := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1 AND is_deleted = false)`,
				productID,
			).Scan(&exists)
			if checkErr != nil {
				return 0, fmt.Errorf("failed to check product existence: %w", checkErr)
			}
			if !exists {
				return 0, model.ErrProductNotFound
			}
			return 0, model.ErrInsufficientStock
		}
		return 0, fmt.Errorf("failed to reserve stock: %w", err)
	}

	return remaining, nil
}

func (r *postgresRepository) ReleaseStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (int, error) {
	if qty <= 0 {
		return 0, model.ErrInvalidQuantity
	}

	query := `
		UPDATE products
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1 AND is_deleted = false
		RETURNING quantity
	`

	var remaining int
	err := tx.QueryRow(ctx, query, productID, qty).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrProductNotFound
		}
		return 0, fmt.Errorf("failed to release stock: %w", err)
	}

	return remaining, nil
}
