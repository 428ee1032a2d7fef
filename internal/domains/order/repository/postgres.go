package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/order/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepository{pool: pool}
}

func (r *postgresOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *postgresOrderRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

func (r *postgresOrderRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Rollback(ctx)
}

const orderColumns = `
	id, code, user_id, status, subtotal, discount, total,
	voucher_id, cancel_reason, updated_by, created_at, updated_at
`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID,
		&o.Code,
		&o.UserID,
		&o.Status,
		&o.Subtotal,
		&o.Discount,
		&o.Total,
		&o.VoucherID,
		&o.CancelReason,
		&o.UpdatedBy,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// =====================================================
// ORDER OPERATIONS
// =====================================================

func (r *postgresOrderRepository) GetPendingOrderByUserForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1 AND status = $2
		FOR UPDATE
	`

	order, err := scanOrder(tx.QueryRow(ctx, query, userID, model.StatusPendingPayment))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending order: %w", err)
	}

	return order, nil
}

func (r *postgresOrderRepository) CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, code, user_id, status, subtotal, discount, total,
			voucher_id, updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		order.ID,
		order.Code,
		order.UserID,
		order.Status,
		order.Subtotal,
		order.Discount,
		order.Total,
		order.VoucherID,
		order.UpdatedBy,
	).Scan(&order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *postgresOrderRepository) CreateOrderDetailsWithTx(ctx context.Context, tx pgx.Tx, details []model.OrderDetail) error {
	query := `
		INSERT INTO order_details (
			id, order_id, product_id, product_name, unit, price, quantity
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	batch := &pgx.Batch{}
	for i := range details {
		d := &details[i]
		batch.Queue(query, d.ID, d.OrderID, d.ProductID, d.ProductName, d.Unit, d.Price, d.Quantity)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range details {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to create order detail: %w", err)
		}
	}

	return nil
}

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by id: %w", err)
	}

	return order, nil
}

func (r *postgresOrderRepository) GetOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	order, err := scanOrder(tx.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order for update: %w", err)
	}

	return order, nil
}

const orderDetailColumns = `id, order_id, product_id, product_name, unit, price, quantity`

func (r *postgresOrderRepository) GetOrderDetailsByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderDetail, error) {
	query := `SELECT ` + orderDetailColumns + ` FROM order_details WHERE order_id = $1`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order details: %w", err)
	}
	defer rows.Close()

	return collectDetails(rows)
}

func (r *postgresOrderRepository) GetOrderDetailsByOrderIDWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.OrderDetail, error) {
	query := `SELECT ` + orderDetailColumns + ` FROM order_details WHERE order_id = $1`

	rows, err := tx.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order details: %w", err)
	}
	defer rows.Close()

	return collectDetails(rows)
}

func collectDetails(rows pgx.Rows) ([]model.OrderDetail, error) {
	var details []model.OrderDetail
	for rows.Next() {
		var d model.OrderDetail
		err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.ProductName, &d.Unit, &d.Price, &d.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *postgresOrderRepository) UpdateOrderStatusWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, status model.Status, actorID uuid.UUID, reason *string) error {
	query := `
		UPDATE orders
		SET status = $2,
		    updated_by = $3,
		    cancel_reason = COALESCE($4, cancel_reason),
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, orderID, status, actorID, reason)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

func (r *postgresOrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	return orders, rows.Err()
}
