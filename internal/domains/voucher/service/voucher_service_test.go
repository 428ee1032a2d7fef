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

	"storefront-backend/internal/domains/voucher/model"
)

// =====================================================
// MOCK REPOSITORY
// =====================================================

type mockVoucherRepo struct {
	voucher *model.Voucher
	held    bool

	attached  bool
	detached  bool
	decrement int
	commits   int
	rollbacks int
}

func (m *mockVoucherRepo) BeginTx(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *mockVoucherRepo) CommitTx(ctx context.Context, tx pgx.Tx) error {
	m.commits++
	return nil
}
func (m *mockVoucherRepo) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	m.rollbacks++
	return nil
}

func (m *mockVoucherRepo) CreateVoucher(ctx context.Context, voucher *model.Voucher) error {
	m.voucher = voucher
	return nil
}

func (m *mockVoucherRepo) GetVoucherByID(ctx context.Context, voucherID uuid.UUID) (*model.Voucher, error) {
	if m.voucher == nil {
		return nil, model.ErrVoucherNotFound
	}
	return m.voucher, nil
}

func (m *mockVoucherRepo) GetVoucherForUpdateWithTx(ctx context.Context, tx pgx.Tx, voucherID uuid.UUID) (*model.Voucher, error) {
	if m.voucher == nil {
		return nil, model.ErrVoucherNotFound
	}
	return m.voucher, nil
}

func (m *mockVoucherRepo) DecrementQuantityWithTx(ctx context.Context, tx pgx.Tx, voucherID uuid.UUID) error {
	if m.voucher == nil || m.voucher.Quantity <= 0 {
		return model.ErrVoucherExhausted
	}
	m.voucher.Quantity--
	m.decrement++
	return nil
}

func (m *mockVoucherRepo) HasVoucherWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID) (bool, error) {
	return m.held, nil
}

func (m *mockVoucherRepo) AttachVoucherWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID) error {
	m.attached = true
	return nil
}

func (m *mockVoucherRepo) GetGrantedVoucherForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID) (*model.Voucher, error) {
	if !m.held || m.voucher == nil {
		return nil, model.ErrVoucherNotGranted
	}
	return m.voucher, nil
}

func (m *mockVoucherRepo) DetachVoucherWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID) error {
	m.detached = true
	return nil
}

func (m *mockVoucherRepo) ListVouchersByUser(ctx context.Context, userID uuid.UUID) ([]model.Voucher, error) {
	if m.voucher == nil || !m.held {
		return nil, nil
	}
	return []model.Voucher{*m.voucher}, nil
}

// =====================================================
// FIXTURES
// =====================================================

func validVoucher() *model.Voucher {
	return &model.Voucher{
		ID:            uuid.New(),
		Code:          "WELCOME10",
		IsActive:      true,
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		Quantity:      5,
		StartDate:     time.Now().Add(-time.Hour),
		EndDate:       time.Now().Add(time.Hour),
	}
}

// =====================================================
// GRANT
// =====================================================

func TestGrantVoucher(t *testing.T) {
	repo := &mockVoucherRepo{voucher: validVoucher()}
	svc := NewVoucherService(repo)

	err := svc.Grant(context.Background(), uuid.New(), repo.voucher.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.decrement)
	assert.True(t, repo.attached)
	assert.Equal(t, 1, repo.commits)
	assert.Equal(t, 0, repo.rollbacks)
}

func TestGrantExpiredVoucher(t *testing.T) {
	v := validVoucher()
	v.EndDate = time.Now().Add(-time.Minute)
	repo := &mockVoucherRepo{voucher: v}
	svc := NewVoucherService(repo)

	err := svc.Grant(context.Background(), uuid.New(), v.ID)
	assert.ErrorIs(t, err, model.ErrVoucherInvalid)
	assert.Equal(t, 0, repo.decrement)
	assert.Equal(t, 0, repo.commits)
	assert.Equal(t, 1, repo.rollbacks)
}

func TestGrantInactiveVoucher(t *testing.T) {
	v := validVoucher()
	v.IsActive = false
	repo := &mockVoucherRepo{voucher: v}
	svc := NewVoucherService(repo)

	err := svc.Grant(context.Background(), uuid.New(), v.ID)
	assert.ErrorIs(t, err, model.ErrVoucherInvalid)
}

func TestGrantAlreadyHeldVoucher(t *testing.T) {
	repo := &mockVoucherRepo{voucher: validVoucher(), held: true}
	svc := NewVoucherService(repo)

	err := svc.Grant(context.Background(), uuid.New(), repo.voucher.ID)
	assert.ErrorIs(t, err, model.ErrAlreadyGranted)
	assert.Equal(t, 0, repo.decrement)
	assert.False(t, repo.attached)
}

func TestGrantExhaustedVoucher(t *testing.T) {
	v := validVoucher()
	v.Quantity = 0
	repo := &mockVoucherRepo{voucher: v}
	svc := NewVoucherService(repo)

	err := svc.Grant(context.Background(), uuid.New(), v.ID)
	assert.ErrorIs(t, err, model.ErrVoucherExhausted)
	assert.False(t, repo.attached)
	assert.Equal(t, 0, repo.commits)
	assert.Equal(t, 1, repo.rollbacks)
}

// =====================================================
// APPLY
// =====================================================

func TestApplyHeldVoucher(t *testing.T) {
	repo := &mockVoucherRepo{voucher: validVoucher(), held: true}
	svc := NewVoucherService(repo)

	discount, err := svc.ApplyWithTx(context.Background(), nil, uuid.New(), repo.voucher.ID, decimal.NewFromInt(200))
	require.NoError(t, err)

	assert.True(t, discount.Equal(decimal.NewFromInt(20)), "discount was %s", discount)
	assert.True(t, repo.detached, "a redeemed voucher must be consumed")
}

func TestApplyNotGrantedVoucher(t *testing.T) {
	repo := &mockVoucherRepo{voucher: validVoucher(), held: false}
	svc := NewVoucherService(repo)

	_, err := svc.ApplyWithTx(context.Background(), nil, uuid.New(), repo.voucher.ID, decimal.NewFromInt(200))
	assert.ErrorIs(t, err, model.ErrVoucherNotGranted)
	assert.False(t, repo.detached)
}

func TestApplyExpiredHeldVoucher(t *testing.T) {
	v := validVoucher()
	v.EndDate = time.Now().Add(-time.Minute)
	repo := &mockVoucherRepo{voucher: v, held: true}
	svc := NewVoucherService(repo)

	_, err := svc.ApplyWithTx(context.Background(), nil, uuid.New(), v.ID, decimal.NewFromInt(200))
	assert.ErrorIs(t, err, model.ErrVoucherInvalid)
	assert.False(t, repo.detached)
}

func TestApplyHeldVoucherIgnoresExhaustedQuantity(t *testing.T) {
	// Quantity was consumed at grant time; a held voucher stays usable
	// even when the global pool has run dry since.
	v := validVoucher()
	v.Quantity = 0
	repo := &mockVoucherRepo{voucher: v, held: true}
	svc := NewVoucherService(repo)

	discount, err := svc.ApplyWithTx(context.Background(), nil, uuid.New(), v.ID, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, discount.Equal(decimal.NewFromInt(10)))
}

// =====================================================
// CREATE
// =====================================================

func TestCreateVoucherValidation(t *testing.T) {
	repo := &mockVoucherRepo{}
	svc := NewVoucherService(repo)

	req := &model.CreateVoucherRequest{
		Code:          "SUMMER",
		DiscountType:  model.DiscountTypeFixed,
		DiscountValue: decimal.NewFromInt(5),
		Quantity:      10,
		StartDate:     time.Now(),
		EndDate:       time.Now().Add(-time.Hour), // ends before it starts
	}

	_, err := svc.CreateVoucher(context.Background(), req)
	require.Error(t, err)

	var vchErr *model.VoucherError
	require.ErrorAs(t, err, &vchErr)
	assert.Equal(t, model.ErrCodeInvalidVoucher, vchErr.Code)
}

func TestCreateVoucher(t *testing.T) {
	repo := &mockVoucherRepo{}
	svc := NewVoucherService(repo)

	req := &model.CreateVoucherRequest{
		Code:          "SUMMER",
		DiscountType:  model.DiscountTypeFixed,
		DiscountValue: decimal.NewFromInt(5),
		Quantity:      10,
		StartDate:     time.Now(),
		EndDate:       time.Now().Add(24 * time.Hour),
	}

	voucher, err := svc.CreateVoucher(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "SUMMER", voucher.Code)
	assert.True(t, voucher.IsActive)
	assert.NotEqual(t, uuid.Nil, voucher.ID)
	require.NotNil(t, repo.voucher)
}
