package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	ordermodel "storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/payment/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresPaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &postgresPaymentRepository{pool: pool}
}

func (r *postgresPaymentRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *postgresPaymentRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

func (r *postgresPaymentRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Rollback(ctx)
}

func (r *postgresPaymentRepository) GetPendingOrderForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.PendingOrder, error) {
	query := `
		SELECT id, code, user_id, total
		FROM orders
		WHERE user_id = $1 AND status = $2
		FOR UPDATE
	`

	var order model.PendingOrder
	err := tx.QueryRow(ctx, query, userID, ordermodel.StatusPendingPayment).Scan(
		&order.ID,
		&order.Code,
		&order.UserID,
		&order.Total,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoPendingOrder
		}
		return nil, fmt.Errorf("failed to get pending order: %w", err)
	}

	return &order, nil
}

func (r *postgresPaymentRepository) CreateTransactionWithTx(ctx context.Context, tx pgx.Tx, txn *model.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, order_id, user_id, method, amount, status, provider_ref
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING created_at
	`

	err := tx.QueryRow(ctx, query,
		txn.ID,
		txn.OrderID,
		txn.UserID,
		txn.Method,
		txn.Amount,
		txn.Status,
		txn.ProviderRef,
	).Scan(&txn.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

func (r *postgresPaymentRepository) MarkOrderPaidWithTx(ctx context.Context, tx pgx.Tx, orderID, actorID uuid.UUID) error {
	query := `
		UPDATE orders
		SET status = $2, updated_by = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`

	result, err := tx.Exec(ctx, query, orderID, ordermodel.StatusPaid, actorID, ordermodel.StatusPendingPayment)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if result.RowsAffected() == 0 {
		// The order moved out of pending between lock and update.
		// Should not happen under FOR UPDATE; kept as a backstop.
		return model.ErrNoPendingOrder
	}

	return nil
}

func (r *postgresPaymentRepository) ListTransactionsByUser(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	query := `
		SELECT id, order_id, user_id, method, amount, status, provider_ref, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		err := rows.Scan(&t.ID, &t.OrderID, &t.UserID, &t.Method, &t.Amount, &t.Status, &t.ProviderRef, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}

	return txns, rows.Err()
}
