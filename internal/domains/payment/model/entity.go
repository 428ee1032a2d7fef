package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// PAYMENT METHOD CONSTANTS
// =====================================================
const (
	MethodCreditCard = "credit_card"
	MethodPaypal     = "paypal"
	MethodCOD        = "cod"
)

// =====================================================
// TRANSACTION STATUS
// =====================================================
const (
	TransactionSuccess = "success"
	TransactionFailed  = "failed"
)

// =====================================================
// ENTITY: Transaction
// =====================================================
// Every payment attempt leaves a transaction row, failed attempts
// included. Only a success row moves the order out of pending.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	UserID      uuid.UUID       `json:"user_id"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	ProviderRef *string         `json:"provider_ref,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// =====================================================
// ENTITY: PendingOrder
// =====================================================
// PendingOrder is the payment domain's view of an order awaiting
// payment. Read straight from the orders table; the payment flow does
// not need the full order shape.
type PendingOrder struct {
	ID     uuid.UUID
	Code   string
	UserID uuid.UUID
	Total  decimal.Decimal
}
