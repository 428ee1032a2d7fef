package service

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/payment/model"
)

// =====================================================
// PAYMENT SERVICE INTERFACE
// =====================================================
type PaymentService interface {
	// RecordPayment charges the caller's pending order through the
	// chosen method and advances it to paid. Failed charges are
	// recorded but leave the order pending.
	RecordPayment(ctx context.Context, userID uuid.UUID, req *model.RecordPaymentRequest) (*model.PaymentResponse, error)

	ListMyTransactions(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error)
}
