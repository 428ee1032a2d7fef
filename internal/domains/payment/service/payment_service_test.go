package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/payment/gateway"
	"storefront-backend/internal/domains/payment/model"
)

// =====================================================
// MOCK REPOSITORY
// =====================================================

type mockPaymentRepo struct {
	pendingOrder *model.PendingOrder

	transactions []*model.Transaction
	markedPaid   bool
	commits      int
	rollbacks    int
}

func (m *mockPaymentRepo) BeginTx(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *mockPaymentRepo) CommitTx(ctx context.Context, tx pgx.Tx) error {
	m.commits++
	return nil
}
func (m *mockPaymentRepo) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	m.rollbacks++
	return nil
}

func (m *mockPaymentRepo) GetPendingOrderForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.PendingOrder, error) {
	if m.pendingOrder == nil {
		return nil, model.ErrNoPendingOrder
	}
	return m.pendingOrder, nil
}

func (m *mockPaymentRepo) CreateTransactionWithTx(ctx context.Context, tx pgx.Tx, txn *model.Transaction) error {
	m.transactions = append(m.transactions, txn)
	return nil
}

func (m *mockPaymentRepo) MarkOrderPaidWithTx(ctx context.Context, tx pgx.Tx, orderID, actorID uuid.UUID) error {
	m.markedPaid = true
	return nil
}

func (m *mockPaymentRepo) ListTransactionsByUser(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	txns := make([]model.Transaction, 0, len(m.transactions))
	for _, t := range m.transactions {
		txns = append(txns, *t)
	}
	return txns, nil
}

// =====================================================
// FIXTURES
// =====================================================

func newRegistry(creditCardEnabled bool) *gateway.Registry {
	return gateway.NewRegistry(
		gateway.NewCreditCardGateway(creditCardEnabled),
		gateway.NewPaypalGateway(true),
		gateway.NewCODGateway(),
	)
}

func pendingOrder(total int64) *model.PendingOrder {
	return &model.PendingOrder{
		ID:     uuid.New(),
		Code:   "ORD-abc123defg",
		UserID: uuid.New(),
		Total:  decimal.NewFromInt(total),
	}
}

// =====================================================
// TESTS
// =====================================================

func TestRecordPayment(t *testing.T) {
	repo := &mockPaymentRepo{pendingOrder: pendingOrder(150)}
	svc := NewPaymentService(repo, newRegistry(true))

	resp, err := svc.RecordPayment(context.Background(), repo.pendingOrder.UserID, &model.RecordPaymentRequest{
		Method: model.MethodCreditCard,
	})
	require.NoError(t, err)

	assert.Equal(t, model.TransactionSuccess, resp.Status)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, repo.pendingOrder.ID, resp.OrderID)

	assert.True(t, repo.markedPaid)
	require.Len(t, repo.transactions, 1)
	assert.Equal(t, model.TransactionSuccess, repo.transactions[0].Status)
	require.NotNil(t, repo.transactions[0].ProviderRef)
	assert.Equal(t, 1, repo.commits)
}

func TestRecordPaymentNoPendingOrder(t *testing.T) {
	repo := &mockPaymentRepo{}
	svc := NewPaymentService(repo, newRegistry(true))

	_, err := svc.RecordPayment(context.Background(), uuid.New(), &model.RecordPaymentRequest{
		Method: model.MethodCreditCard,
	})
	assert.ErrorIs(t, err, model.ErrNoPendingOrder)
	assert.Empty(t, repo.transactions)
	assert.Equal(t, 0, repo.commits)
}

func TestRecordPaymentDeclined(t *testing.T) {
	repo := &mockPaymentRepo{pendingOrder: pendingOrder(150)}
	svc := NewPaymentService(repo, newRegistry(false)) // credit card disabled

	_, err := svc.RecordPayment(context.Background(), repo.pendingOrder.UserID, &model.RecordPaymentRequest{
		Method: model.MethodCreditCard,
	})
	require.Error(t, err)

	var payErr *model.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, model.ErrCodePaymentFailed, payErr.Code)

	// The failed attempt is still recorded, but the order stays pending
	require.Len(t, repo.transactions, 1)
	assert.Equal(t, model.TransactionFailed, repo.transactions[0].Status)
	assert.False(t, repo.markedPaid)
	assert.Equal(t, 1, repo.commits)
}

func TestRecordPaymentUnknownMethod(t *testing.T) {
	repo := &mockPaymentRepo{pendingOrder: pendingOrder(150)}
	svc := NewPaymentService(repo, newRegistry(true))

	_, err := svc.RecordPayment(context.Background(), uuid.New(), &model.RecordPaymentRequest{
		Method: "barter",
	})
	require.Error(t, err)

	var payErr *model.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, model.ErrCodeInvalidPayment, payErr.Code)
	assert.Empty(t, repo.transactions)
}

func TestRecordPaymentCOD(t *testing.T) {
	repo := &mockPaymentRepo{pendingOrder: pendingOrder(80)}
	svc := NewPaymentService(repo, newRegistry(true))

	resp, err := svc.RecordPayment(context.Background(), repo.pendingOrder.UserID, &model.RecordPaymentRequest{
		Method: model.MethodCOD,
	})
	require.NoError(t, err)

	assert.Equal(t, model.TransactionSuccess, resp.Status)
	assert.True(t, repo.markedPaid)
	require.NotNil(t, repo.transactions[0].ProviderRef)
	assert.Equal(t, "cod_ORD-abc123defg", *repo.transactions[0].ProviderRef)
}
