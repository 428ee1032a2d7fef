package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/order/model"
)

// =====================================================
// ORDER REPOSITORY INTERFACE
// =====================================================
type OrderRepository interface {
	// Transaction management
	BeginTx(ctx context.Context) (pgx.Tx, error)
	CommitTx(ctx context.Context, tx pgx.Tx) error
	RollbackTx(ctx context.Context, tx pgx.Tx) error

	// GetPendingOrderByUserForUpdate locks the user's pending-payment
	// order if one exists. Returns (nil, nil) when the user has none;
	// checkout treats an existing pending order as the checkout result.
	GetPendingOrderByUserForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Order, error)

	CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error
	CreateOrderDetailsWithTx(ctx context.Context, tx pgx.Tx, details []model.OrderDetail) error

	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	// GetOrderByIDForUpdate locks the order row so concurrent lifecycle
	// actions (confirm, cancel, payment) serialize.
	GetOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*model.Order, error)
	GetOrderDetailsByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderDetail, error)
	GetOrderDetailsByOrderIDWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.OrderDetail, error)

	// UpdateOrderStatusWithTx moves the order to status and records the
	// acting user. reason is stored only on cancellation.
	UpdateOrderStatusWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, status model.Status, actorID uuid.UUID, reason *string) error

	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
}
