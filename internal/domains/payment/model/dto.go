package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// RECORD PAYMENT REQUEST
// =====================================================
// The order is implicit: payment always targets the caller's single
// pending order.
type RecordPaymentRequest struct {
	Method string `json:"method"`
}

func (req RecordPaymentRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Method, validation.Required, validation.In(
			MethodCreditCard,
			MethodPaypal,
			MethodCOD,
		)),
	)
}

// =====================================================
// PAYMENT RESPONSE
// =====================================================
type PaymentResponse struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	OrderID       uuid.UUID       `json:"order_id"`
	OrderCode     string          `json:"order_code"`
	Method        string          `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	PaidAt        time.Time       `json:"paid_at"`
}

func BuildPaymentResponse(txn *Transaction, order *PendingOrder) PaymentResponse {
	return PaymentResponse{
		TransactionID: txn.ID,
		OrderID:       order.ID,
		OrderCode:     order.Code,
		Method:        txn.Method,
		Amount:        txn.Amount,
		Status:        txn.Status,
		PaidAt:        txn.CreatedAt,
	}
}
