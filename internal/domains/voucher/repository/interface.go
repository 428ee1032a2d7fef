package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/voucher/model"
)

// =====================================================
// VOUCHER REPOSITORY INTERFACE
// =====================================================
type VoucherRepository interface {
	// Transaction management
	BeginTx(ctx context.Context) (pgx.Tx, error)
	CommitTx(ctx context.Context, tx pgx.Tx) error
	RollbackTx(ctx context.Context, tx pgx.Tx) error

	// Voucher operations
	CreateVoucher(ctx context.Context, voucher *model.Voucher) error
	GetVoucherByID(ctx context.Context, voucherID uuid.UUID) (*model.Voucher, error)
	// GetVoucherForUpdateWithTx locks the voucher row inside the
	// caller's transaction (grant decrements quantity under this lock).
	GetVoucherForUpdateWithTx(ctx context.Context, tx pgx.Tx, voucherID uuid.UUID) (*model.Voucher, error)
	// DecrementQuantityWithTx fails with model.ErrVoucherExhausted when
	// no redemptions remain; quantity never goes negative.
	DecrementQuantityWithTx(ctx context.Context, tx pgx.Tx, voucherID uuid.UUID) error

	// Assignment operations (user_vouchers join)
	HasVoucherWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID) (bool, error)
	AttachVoucherWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID) error
	// GetGrantedVoucherForUpdateWithTx loads a voucher through the
	// user's assignment, locking both rows. Returns
	// model.ErrVoucherNotGranted when the user does not hold it.
	GetGrantedVoucherForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID) (*model.Voucher, error)
	// DetachVoucherWithTx removes the assignment on redemption
	DetachVoucherWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID) error
	ListVouchersByUser(ctx context.Context, userID uuid.UUID) ([]model.Voucher, error)
}
