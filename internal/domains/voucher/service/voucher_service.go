package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/voucher/model"
	"storefront-backend/internal/domains/voucher/repository"
	"storefront-backend/pkg/logger"
)

// =====================================================
// VOUCHER SERVICE IMPLEMENTATION
// =====================================================
type voucherService struct {
	voucherRepo repository.VoucherRepository
	calculator  DiscountCalculator
}

func NewVoucherService(voucherRepo repository.VoucherRepository) VoucherService {
	return &voucherService{
		voucherRepo: voucherRepo,
		calculator:  NewDiscountCalculator(),
	}
}

func (s *voucherService) CreateVoucher(ctx context.Context, req *model.CreateVoucherRequest) (*model.Voucher, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewVoucherError(model.ErrCodeInvalidVoucher, "Invalid voucher", err)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, model.NewVoucherError(model.ErrCodeInvalidVoucher, "Voucher end date must be after start date", nil)
	}

	voucher := &model.Voucher{
		ID:               uuid.New(),
		Code:             req.Code,
		IsActive:         true,
		DiscountType:     req.DiscountType,
		DiscountValue:    req.DiscountValue,
		MaxDiscountValue: req.MaxDiscountValue,
		Quantity:         req.Quantity,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
	}

	if err := s.voucherRepo.CreateVoucher(ctx, voucher); err != nil {
		return nil, err
	}

	return voucher, nil
}

// Grant stores a voucher into the user's account. The global quantity
// is decremented at grant time, so a granted voucher is a reserved
// redemption the user cannot lose to other shoppers.
func (s *voucherService) Grant(ctx context.Context, userID, voucherID uuid.UUID) error {
	tx, err := s.voucherRepo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := s.voucherRepo.RollbackTx(ctx, tx); rbErr != nil {
				logger.Error("Failed to rollback grant voucher transaction", rbErr)
			}
		}
	}()

	// Step 1: lock the voucher and check it is redeemable. Quantity is
	// not checked here: the conditional decrement below reports
	// exhaustion, and the two cases map to different errors.
	voucher, err := s.voucherRepo.GetVoucherForUpdateWithTx(ctx, tx, voucherID)
	if err != nil {
		return err
	}
	if !voucher.IsActive || !voucher.InDateWindow(time.Now()) {
		err = model.ErrVoucherInvalid
		return err
	}

	// Step 2: a user holds at most one instance of a voucher
	held, err := s.voucherRepo.HasVoucherWithTx(ctx, tx, userID, voucherID)
	if err != nil {
		return err
	}
	if held {
		err = model.ErrAlreadyGranted
		return err
	}

	// Step 3: take one redemption and attach
	if err = s.voucherRepo.DecrementQuantityWithTx(ctx, tx, voucherID); err != nil {
		return err
	}
	if err = s.voucherRepo.AttachVoucherWithTx(ctx, tx, userID, voucherID); err != nil {
		return err
	}

	if err = s.voucherRepo.CommitTx(ctx, tx); err != nil {
		return err
	}

	logger.Info("Voucher granted", map[string]interface{}{
		"user_id":    userID.String(),
		"voucher_id": voucherID.String(),
	})

	return nil
}

// ApplyWithTx redeems a held voucher inside the caller's transaction.
// Validity here means active and inside the date window; the global
// quantity was already consumed when the voucher was granted.
func (s *voucherService) ApplyWithTx(ctx context.Context, tx pgx.Tx, userID, voucherID uuid.UUID, subtotal decimal.Decimal) (decimal.Decimal, error) {
	voucher, err := s.voucherRepo.GetGrantedVoucherForUpdateWithTx(ctx, tx, userID, voucherID)
	if err != nil {
		return decimal.Zero, err
	}

	if !voucher.IsActive || !voucher.InDateWindow(time.Now()) {
		return decimal.Zero, model.ErrVoucherInvalid
	}

	discount := s.calculator.Calculate(voucher, subtotal)

	// Consume the assignment in the same transaction: if checkout rolls
	// back, the user keeps the voucher.
	if err := s.voucherRepo.DetachVoucherWithTx(ctx, tx, userID, voucherID); err != nil {
		return decimal.Zero, err
	}

	return discount, nil
}

func (s *voucherService) ListUserVouchers(ctx context.Context, userID uuid.UUID) ([]model.VoucherResponse, error) {
	vouchers, err := s.voucherRepo.ListVouchersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]model.VoucherResponse, 0, len(vouchers))
	for i := range vouchers {
		responses = append(responses, model.BuildVoucherResponse(&vouchers[i]))
	}

	return responses, nil
}
