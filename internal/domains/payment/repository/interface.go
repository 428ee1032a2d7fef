package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/payment/model"
)

// =====================================================
// PAYMENT REPOSITORY INTERFACE
// =====================================================
// The payment domain reads the orders table directly through its own
// narrow queries instead of going through the order domain.
type PaymentRepository interface {
	// Transaction management
	BeginTx(ctx context.Context) (pgx.Tx, error)
	CommitTx(ctx context.Context, tx pgx.Tx) error
	RollbackTx(ctx context.Context, tx pgx.Tx) error

	// GetPendingOrderForUpdateWithTx locks the user's pending-payment
	// order. Returns model.ErrNoPendingOrder when there is none.
	GetPendingOrderForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.PendingOrder, error)

	CreateTransactionWithTx(ctx context.Context, tx pgx.Tx, txn *model.Transaction) error

	// MarkOrderPaidWithTx advances the order from pending to paid,
	// conditional on it still being pending.
	MarkOrderPaidWithTx(ctx context.Context, tx pgx.Tx, orderID, actorID uuid.UUID) error

	ListTransactionsByUser(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error)
}
