package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	catalogmodel "storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/order/model"
)

// =====================================================
// ORDER SERVICE INTERFACE
// =====================================================
type OrderService interface {
	// Checkout converts the user's cart into a pending-payment order.
	// Prices are recomputed from the catalog; stock is reserved in the
	// same transaction. If the user already has a pending order it is
	// returned unchanged with created=false, so retrying a checkout is
	// safe and callers can tell a replay from a fresh order.
	Checkout(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (resp *model.OrderResponse, created bool, err error)

	// Confirm advances a paid order to approved, or an approved order
	// to delivered. Admin action; adminID is recorded on the order.
	Confirm(ctx context.Context, orderID, adminID uuid.UUID) (*model.OrderResponse, error)

	// Cancel cancels a pending or paid order, restocking every line.
	// actorID is the admin (or the buyer, for their own pending order).
	Cancel(ctx context.Context, orderID, actorID uuid.UUID, reason string) (*model.OrderResponse, error)

	// GetOrder returns an order with its lines. Non-admin callers only
	// see their own orders.
	GetOrder(ctx context.Context, orderID, requesterID uuid.UUID, isAdmin bool) (*model.OrderResponse, error)

	ListMyOrders(ctx context.Context, userID uuid.UUID) ([]model.OrderResponse, error)
}

// =====================================================
// CROSS-DOMAIN DEPENDENCIES
// =====================================================
// Narrow views of the catalog, inventory, and voucher domains. Checkout
// composes them inside a single transaction.

type ProductReader interface {
	GetProductByIDForUpdate(ctx context.Context, tx pgx.Tx, productID uuid.UUID) (*catalogmodel.Product, error)
}

type StockAdjuster interface {
	ReserveWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (int, error)
	ReleaseWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (int, error)
}

type VoucherApplier interface {
	ApplyWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID, subtotal decimal.Decimal) (decimal.Decimal, error)
}
