package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/voucher/model"
)

// =====================================================
// VOUCHER SERVICE INTERFACE
// =====================================================
type VoucherService interface {
	// CreateVoucher registers a new voucher (admin only).
	CreateVoucher(ctx context.Context, req *model.CreateVoucherRequest) (*model.Voucher, error)
	// Grant stores a voucher into the user's account. Fails when the
	// voucher is invalid, exhausted, or already held.
	Grant(ctx context.Context, userID, voucherID uuid.UUID) error
	// ApplyWithTx redeems a held voucher inside the caller's checkout
	// transaction and returns the discount amount. The assignment is
	// consumed in the same transaction, so a rolled-back checkout
	// returns the voucher to the user.
	ApplyWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID, subtotal decimal.Decimal) (decimal.Decimal, error)
	// ListUserVouchers returns the vouchers currently held by the user.
	ListUserVouchers(ctx context.Context, userID uuid.UUID) ([]model.VoucherResponse, error)
}
