package service

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/payment/gateway"
	"storefront-backend/internal/domains/payment/model"
	"storefront-backend/internal/domains/payment/repository"
	"storefront-backend/pkg/logger"
)

// =====================================================
// PAYMENT SERVICE IMPLEMENTATION
// =====================================================
type paymentService struct {
	paymentRepo repository.PaymentRepository
	gateways    *gateway.Registry
}

func NewPaymentService(paymentRepo repository.PaymentRepository, gateways *gateway.Registry) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		gateways:    gateways,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, userID uuid.UUID, req *model.RecordPaymentRequest) (*model.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewPaymentError(model.ErrCodeInvalidPayment, "Invalid payment request", err)
	}

	gw, ok := s.gateways.Get(req.Method)
	if !ok {
		return nil, model.NewPaymentError(model.ErrCodeInvalidPayment, "Unknown payment method", model.ErrUnknownMethod)
	}

	tx, err := s.paymentRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.paymentRepo.RollbackTx(ctx, tx); rbErr != nil {
				logger.Error("Failed to rollback payment transaction", rbErr)
			}
		}
	}()

	// Step 1: lock the pending order so a double-submit cannot charge
	// the same order twice
	order, err := s.paymentRepo.GetPendingOrderForUpdateWithTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	// Step 2: charge. The stub gateways return immediately; a real
	// provider integration would move this call out from under the
	// row lock.
	providerRef, chargeErr := gw.Charge(ctx, order.Code, order.Total)

	txn := &model.Transaction{
		ID:      uuid.New(),
		OrderID: order.ID,
		UserID:  userID,
		Method:  req.Method,
		Amount:  order.Total,
		Status:  model.TransactionSuccess,
	}
	if providerRef != "" {
		txn.ProviderRef = &providerRef
	}

	// Step 3: record the attempt. A declined charge is committed too,
	// as a failed transaction, and the order stays pending.
	if chargeErr != nil {
		txn.Status = model.TransactionFailed
		if err := s.paymentRepo.CreateTransactionWithTx(ctx, tx, txn); err != nil {
			return nil, err
		}
		if err := s.paymentRepo.CommitTx(ctx, tx); err != nil {
			return nil, err
		}
		committed = true

		logger.Error("Payment charge failed", chargeErr)
		return nil, model.NewPaymentError(model.ErrCodePaymentFailed, "Payment failed", chargeErr)
	}

	if err := s.paymentRepo.CreateTransactionWithTx(ctx, tx, txn); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.MarkOrderPaidWithTx(ctx, tx, order.ID, userID); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.CommitTx(ctx, tx); err != nil {
		return nil, err
	}
	committed = true

	logger.Info("Payment recorded", map[string]interface{}{
		"order_id":       order.ID.String(),
		"order_code":     order.Code,
		"user_id":        userID.String(),
		"method":         req.Method,
		"amount":         order.Total.String(),
		"transaction_id": txn.ID.String(),
	})

	resp := model.BuildPaymentResponse(txn, order)
	return &resp, nil
}

func (s *paymentService) ListMyTransactions(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	return s.paymentRepo.ListTransactionsByUser(ctx, userID)
}
