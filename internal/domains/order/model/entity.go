package model

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// ENTITY: Order
// =====================================================
type Order struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	UserID       uuid.UUID       `json:"user_id"`
	Status       Status          `json:"status"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	VoucherID    *uuid.UUID      `json:"voucher_id,omitempty"`
	CancelReason *string         `json:"cancel_reason,omitempty"`
	// UpdatedBy records the last actor who moved the order through its
	// lifecycle (the buyer at checkout, an admin on confirm/cancel).
	UpdatedBy uuid.UUID `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// =====================================================
// ENTITY: OrderDetail
// =====================================================
// OrderDetail snapshots the product at purchase time. Price is the
// server-computed effective unit price, not what the client sent.
type OrderDetail struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

func (d *OrderDetail) LineTotal() decimal.Decimal {
	return d.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// =====================================================
// ORDER CODE
// =====================================================
const orderCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateOrderCode produces a human-readable reference like
// ORD-x7k29fm3qa. Collisions are caught by the unique index on code.
func GenerateOrderCode() string {
	buf := make([]byte, 10)
	_, _ = rand.Read(buf) // never fails per crypto/rand contract
	for i, b := range buf {
		buf[i] = orderCodeAlphabet[int(b)%len(orderCodeAlphabet)]
	}
	return "ORD-" + string(buf)
}
