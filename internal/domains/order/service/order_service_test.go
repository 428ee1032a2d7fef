package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmodel "storefront-backend/internal/domains/catalog/model"
	inventorymodel "storefront-backend/internal/domains/inventory/model"
	"storefront-backend/internal/domains/order/model"
	vouchermodel "storefront-backend/internal/domains/voucher/model"
)

// =====================================================
// MOCKS
// =====================================================

type mockOrderRepo struct {
	pendingOrder  *model.Order
	createdOrder  *model.Order
	createdLines  []model.OrderDetail
	storedOrder   *model.Order
	storedDetails []model.OrderDetail

	updatedStatus *model.Status
	updatedActor  uuid.UUID
	updatedReason *string

	commits   int
	rollbacks int

	getPendingErr error
	createErr     error
}

func (m *mockOrderRepo) BeginTx(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *mockOrderRepo) CommitTx(ctx context.Context, tx pgx.Tx) error {
	m.commits++
	return nil
}
func (m *mockOrderRepo) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	m.rollbacks++
	return nil
}

func (m *mockOrderRepo) GetPendingOrderByUserForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Order, error) {
	return m.pendingOrder, m.getPendingErr
}

func (m *mockOrderRepo) CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.createdOrder = order
	return nil
}

func (m *mockOrderRepo) CreateOrderDetailsWithTx(ctx context.Context, tx pgx.Tx, details []model.OrderDetail) error {
	m.createdLines = details
	return nil
}

func (m *mockOrderRepo) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	if m.storedOrder == nil || m.storedOrder.ID != orderID {
		return nil, model.ErrOrderNotFound
	}
	return m.storedOrder, nil
}

func (m *mockOrderRepo) GetOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*model.Order, error) {
	return m.GetOrderByID(ctx, orderID)
}

func (m *mockOrderRepo) GetOrderDetailsByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderDetail, error) {
	return m.storedDetails, nil
}

func (m *mockOrderRepo) GetOrderDetailsByOrderIDWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.OrderDetail, error) {
	return m.storedDetails, nil
}

func (m *mockOrderRepo) UpdateOrderStatusWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, status model.Status, actorID uuid.UUID, reason *string) error {
	m.updatedStatus = &status
	m.updatedActor = actorID
	m.updatedReason = reason
	return nil
}

func (m *mockOrderRepo) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	if m.storedOrder == nil {
		return nil, nil
	}
	return []model.Order{*m.storedOrder}, nil
}

type mockProductReader struct {
	products map[uuid.UUID]*catalogmodel.Product
}

func (m *mockProductReader) GetProductByIDForUpdate(ctx context.Context, tx pgx.Tx, productID uuid.UUID) (*catalogmodel.Product, error) {
	p, ok := m.products[productID]
	if !ok {
		return nil, catalogmodel.ErrProductNotFound
	}
	return p, nil
}

type stockCall struct {
	productID uuid.UUID
	qty       int
}

type mockStockAdjuster struct {
	reserved   []stockCall
	released   []stockCall
	reserveErr map[uuid.UUID]error
}

func (m *mockStockAdjuster) ReserveWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (int, error) {
	if err := m.reserveErr[productID]; err != nil {
		return 0, err
	}
	m.reserved = append(m.reserved, stockCall{productID, qty})
	return 0, nil
}

func (m *mockStockAdjuster) ReleaseWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, qty int) (int, error) {
	m.released = append(m.released, stockCall{productID, qty})
	return 0, nil
}

type mockVoucherApplier struct {
	discount decimal.Decimal
	err      error
	subtotal decimal.Decimal
	called   bool
}

func (m *mockVoucherApplier) ApplyWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID, subtotal decimal.Decimal) (decimal.Decimal, error) {
	m.called = true
	m.subtotal = subtotal
	if m.err != nil {
		return decimal.Zero, m.err
	}
	return m.discount, nil
}

type mockCache struct {
	deleted []string
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	m.deleted = append(m.deleted, keys...)
	return nil
}
func (m *mockCache) Ping(ctx context.Context) error { return nil }

// =====================================================
// FIXTURES
// =====================================================

func newProduct(name string, price int64, salePercent, quantity int) *catalogmodel.Product {
	return &catalogmodel.Product{
		ID:          uuid.New(),
		Name:        name,
		Price:       decimal.NewFromInt(price),
		SalePercent: salePercent,
		Quantity:    quantity,
		IsActive:    true,
	}
}

type orderFixture struct {
	repo     *mockOrderRepo
	products *mockProductReader
	stock    *mockStockAdjuster
	vouchers *mockVoucherApplier
	cache    *mockCache
	svc      OrderService
}

func newOrderFixture(products ...*catalogmodel.Product) *orderFixture {
	f := &orderFixture{
		repo:     &mockOrderRepo{},
		products: &mockProductReader{products: map[uuid.UUID]*catalogmodel.Product{}},
		stock:    &mockStockAdjuster{reserveErr: map[uuid.UUID]error{}},
		vouchers: &mockVoucherApplier{},
		cache:    &mockCache{},
	}
	for _, p := range products {
		f.products.products[p.ID] = p
	}
	f.svc = NewOrderService(f.repo, f.products, f.stock, f.vouchers, f.cache)
	return f
}

// =====================================================
// CHECKOUT
// =====================================================

func TestCheckoutRepricesFromCatalog(t *testing.T) {
	apples := newProduct("Apples", 100, 20, 50) // effective 80
	bread := newProduct("Bread", 30, 0, 10)     // effective 30
	f := newOrderFixture(apples, bread)
	userID := uuid.New()

	// Client claims absurd prices; the server must not care.
	req := &model.CheckoutRequest{
		Cart: []model.CartLine{
			{ID: apples.ID, Price: decimal.NewFromInt(1), Quantity: 2, Unit: "kg"},
			{ID: bread.ID, Price: decimal.NewFromInt(1), Quantity: 3, Unit: "loaf"},
		},
	}

	resp, created, err := f.svc.Checkout(context.Background(), userID, req)
	require.NoError(t, err)
	assert.True(t, created)

	// 2*80 + 3*30 = 250
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(250)), "subtotal was %s", resp.Subtotal)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, model.StatusPendingPayment.String(), resp.Status)
	assert.Len(t, resp.Details, 2)
	assert.True(t, resp.Details[0].Price.Equal(decimal.NewFromInt(80)))

	// Stock reserved for both lines, transaction committed once
	require.Len(t, f.stock.reserved, 2)
	assert.Equal(t, stockCall{apples.ID, 2}, f.stock.reserved[0])
	assert.Equal(t, stockCall{bread.ID, 3}, f.stock.reserved[1])
	assert.Equal(t, 1, f.repo.commits)
	assert.Equal(t, 0, f.repo.rollbacks)

	// Product caches evicted after commit
	assert.Contains(t, f.cache.deleted, catalogmodel.ActiveProductsCacheKey)
	assert.Contains(t, f.cache.deleted, catalogmodel.ProductCacheKey(apples.ID))
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newOrderFixture()

	_, _, err := f.svc.Checkout(context.Background(), uuid.New(), &model.CheckoutRequest{})
	require.Error(t, err)

	var ordErr *model.OrderError
	require.ErrorAs(t, err, &ordErr)
	assert.Equal(t, model.ErrCodeEmptyCart, ordErr.Code)
	assert.Equal(t, 0, f.repo.commits)
}

func TestCheckoutReturnsExistingPendingOrder(t *testing.T) {
	apples := newProduct("Apples", 100, 0, 50)
	f := newOrderFixture(apples)
	userID := uuid.New()

	existing := &model.Order{
		ID:       uuid.New(),
		Code:     "ORD-existing01",
		UserID:   userID,
		Status:   model.StatusPendingPayment,
		Subtotal: decimal.NewFromInt(100),
		Total:    decimal.NewFromInt(100),
	}
	f.repo.pendingOrder = existing

	req := &model.CheckoutRequest{
		Cart: []model.CartLine{{ID: apples.ID, Quantity: 5, Price: decimal.NewFromInt(100)}},
	}

	resp, created, err := f.svc.Checkout(context.Background(), userID, req)
	require.NoError(t, err)

	// The existing order comes back untouched and flagged as a replay;
	// nothing new is created and no stock moves.
	assert.False(t, created)
	assert.Equal(t, existing.ID, resp.ID)
	assert.Nil(t, f.repo.createdOrder)
	assert.Empty(t, f.stock.reserved)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	apples := newProduct("Apples", 100, 0, 3)
	f := newOrderFixture(apples)

	req := &model.CheckoutRequest{
		Cart: []model.CartLine{{ID: apples.ID, Quantity: 5, Price: decimal.NewFromInt(100)}},
	}

	_, _, err := f.svc.Checkout(context.Background(), uuid.New(), req)
	require.Error(t, err)

	var ordErr *model.OrderError
	require.ErrorAs(t, err, &ordErr)
	assert.Equal(t, model.ErrCodeInsufficientStock, ordErr.Code)
	assert.Contains(t, ordErr.Message, "Apples")

	// Whole checkout aborts: nothing committed, nothing reserved
	assert.Equal(t, 0, f.repo.commits)
	assert.Equal(t, 1, f.repo.rollbacks)
	assert.Empty(t, f.stock.reserved)
}

func TestCheckoutReserveFailureAbortsEverything(t *testing.T) {
	apples := newProduct("Apples", 100, 0, 50)
	bread := newProduct("Bread", 30, 0, 50)
	f := newOrderFixture(apples, bread)
	f.stock.reserveErr[bread.ID] = inventorymodel.ErrInsufficientStock

	req := &model.CheckoutRequest{
		Cart: []model.CartLine{
			{ID: apples.ID, Quantity: 1, Price: decimal.NewFromInt(100)},
			{ID: bread.ID, Quantity: 1, Price: decimal.NewFromInt(30)},
		},
	}

	_, _, err := f.svc.Checkout(context.Background(), uuid.New(), req)
	require.Error(t, err)

	var ordErr *model.OrderError
	require.ErrorAs(t, err, &ordErr)
	assert.Equal(t, model.ErrCodeInsufficientStock, ordErr.Code)

	// First line reserved, then the failure rolls the whole thing back
	assert.Equal(t, 0, f.repo.commits)
	assert.Equal(t, 1, f.repo.rollbacks)
	assert.Empty(t, f.cache.deleted)
}

func TestCheckoutAppliesVoucher(t *testing.T) {
	apples := newProduct("Apples", 100, 0, 50)
	f := newOrderFixture(apples)
	f.vouchers.discount = decimal.NewFromInt(40)
	voucherID := uuid.New()

	req := &model.CheckoutRequest{
		Cart:      []model.CartLine{{ID: apples.ID, Quantity: 2, Price: decimal.NewFromInt(100)}},
		VoucherID: &voucherID,
	}

	resp, _, err := f.svc.Checkout(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.True(t, f.vouchers.called)
	// Voucher sees the server subtotal, not the client's numbers
	assert.True(t, f.vouchers.subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, resp.Discount.Equal(decimal.NewFromInt(40)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(160)))
	require.NotNil(t, resp.VoucherID)
	assert.Equal(t, voucherID, *resp.VoucherID)
}

func TestCheckoutRejectedVoucher(t *testing.T) {
	apples := newProduct("Apples", 100, 0, 50)
	f := newOrderFixture(apples)
	f.vouchers.err = vouchermodel.ErrVoucherNotGranted
	voucherID := uuid.New()

	req := &model.CheckoutRequest{
		Cart:      []model.CartLine{{ID: apples.ID, Quantity: 1, Price: decimal.NewFromInt(100)}},
		VoucherID: &voucherID,
	}

	_, _, err := f.svc.Checkout(context.Background(), uuid.New(), req)
	require.Error(t, err)

	var ordErr *model.OrderError
	require.ErrorAs(t, err, &ordErr)
	assert.Equal(t, model.ErrCodeVoucherRejected, ordErr.Code)
	assert.ErrorIs(t, err, vouchermodel.ErrVoucherNotGranted)
	assert.Equal(t, 0, f.repo.commits)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	f := newOrderFixture()

	req := &model.CheckoutRequest{
		Cart: []model.CartLine{{ID: uuid.New(), Quantity: 1, Price: decimal.NewFromInt(5)}},
	}

	_, _, err := f.svc.Checkout(context.Background(), uuid.New(), req)
	require.Error(t, err)

	var ordErr *model.OrderError
	require.ErrorAs(t, err, &ordErr)
	assert.Equal(t, model.ErrCodeInvalidCart, ordErr.Code)
}

// =====================================================
// CONFIRM
// =====================================================

func TestConfirmTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    model.Status
		want    model.Status
		wantErr bool
	}{
		{name: "paid to approved", from: model.StatusPaid, want: model.StatusApproved},
		{name: "approved to delivered", from: model.StatusApproved, want: model.StatusDelivered},
		{name: "pending cannot confirm", from: model.StatusPendingPayment, wantErr: true},
		{name: "delivered cannot confirm", from: model.StatusDelivered, wantErr: true},
		{name: "cancelled cannot confirm", from: model.StatusCancelled, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			adminID := uuid.New()
			order := &model.Order{ID: uuid.New(), UserID: uuid.New(), Status: tt.from}
			f.repo.storedOrder = order

			resp, err := f.svc.Confirm(context.Background(), order.ID, adminID)
			if tt.wantErr {
				require.Error(t, err)
				var ordErr *model.OrderError
				require.ErrorAs(t, err, &ordErr)
				assert.Equal(t, model.ErrCodeInvalidTransition, ordErr.Code)
				assert.Equal(t, 0, f.repo.commits)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.String(), resp.Status)
			require.NotNil(t, f.repo.updatedStatus)
			assert.Equal(t, tt.want, *f.repo.updatedStatus)
			assert.Equal(t, adminID, f.repo.updatedActor)
			assert.Equal(t, 1, f.repo.commits)
		})
	}
}

// =====================================================
// CANCEL
// =====================================================

func TestCancelRestocksEveryLine(t *testing.T) {
	f := newOrderFixture()
	actorID := uuid.New()
	p1, p2 := uuid.New(), uuid.New()
	order := &model.Order{ID: uuid.New(), UserID: uuid.New(), Status: model.StatusPaid}
	f.repo.storedOrder = order
	f.repo.storedDetails = []model.OrderDetail{
		{ProductID: p1, ProductName: "Apples", Quantity: 2},
		{ProductID: p2, ProductName: "Bread", Quantity: 3},
	}

	resp, err := f.svc.Cancel(context.Background(), order.ID, actorID, "customer request")
	require.NoError(t, err)

	assert.Equal(t, model.StatusCancelled.String(), resp.Status)
	require.NotNil(t, resp.CancelReason)
	assert.Equal(t, "customer request", *resp.CancelReason)

	require.Len(t, f.stock.released, 2)
	assert.Equal(t, stockCall{p1, 2}, f.stock.released[0])
	assert.Equal(t, stockCall{p2, 3}, f.stock.released[1])

	require.NotNil(t, f.repo.updatedReason)
	assert.Equal(t, "customer request", *f.repo.updatedReason)
	assert.Equal(t, actorID, f.repo.updatedActor)
	assert.Equal(t, 1, f.repo.commits)

	// Released stock invalidates product caches
	assert.Contains(t, f.cache.deleted, catalogmodel.ProductCacheKey(p1))
}

func TestCancelRejectionMessages(t *testing.T) {
	tests := []struct {
		name        string
		status      model.Status
		wantMessage string
	}{
		{name: "approved", status: model.StatusApproved, wantMessage: "approved for shipping"},
		{name: "delivered", status: model.StatusDelivered, wantMessage: "already been delivered"},
		{name: "cancelled", status: model.StatusCancelled, wantMessage: "already cancelled"},
		{name: "returned", status: model.StatusReturned, wantMessage: "already been returned"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			order := &model.Order{ID: uuid.New(), UserID: uuid.New(), Status: tt.status}
			f.repo.storedOrder = order

			_, err := f.svc.Cancel(context.Background(), order.ID, uuid.New(), "too late")
			require.Error(t, err)

			var ordErr *model.OrderError
			require.ErrorAs(t, err, &ordErr)
			assert.Equal(t, model.ErrCodeInvalidTransition, ordErr.Code)
			assert.Contains(t, ordErr.Message, tt.wantMessage)
			assert.Empty(t, f.stock.released)
			assert.Equal(t, 0, f.repo.commits)
		})
	}
}

// =====================================================
// QUERIES
// =====================================================

func TestGetOrderOwnership(t *testing.T) {
	f := newOrderFixture()
	ownerID := uuid.New()
	order := &model.Order{ID: uuid.New(), UserID: ownerID, Status: model.StatusPaid}
	f.repo.storedOrder = order

	// Owner sees it
	resp, err := f.svc.GetOrder(context.Background(), order.ID, ownerID, false)
	require.NoError(t, err)
	assert.Equal(t, order.ID, resp.ID)

	// A stranger gets not-found, not forbidden
	_, err = f.svc.GetOrder(context.Background(), order.ID, uuid.New(), false)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)

	// An admin sees any order
	_, err = f.svc.GetOrder(context.Background(), order.ID, uuid.New(), true)
	assert.NoError(t, err)
}
