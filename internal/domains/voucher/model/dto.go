package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// GRANT VOUCHER REQUEST
// =====================================================
type GrantVoucherRequest struct {
	VoucherID uuid.UUID `json:"voucher_id"`
}

func (req GrantVoucherRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.VoucherID, validation.Required),
	)
}

// =====================================================
// CREATE VOUCHER REQUEST (ADMIN)
// =====================================================
type CreateVoucherRequest struct {
	Code             string          `json:"code"`
	DiscountType     string          `json:"discount_type"`
	DiscountValue    decimal.Decimal `json:"discount_value"`
	MaxDiscountValue decimal.Decimal `json:"max_discount_value"`
	Quantity         int             `json:"quantity"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
}

func (req CreateVoucherRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Code, validation.Required, validation.Length(3, 64)),
		validation.Field(&req.DiscountType, validation.Required, validation.In(
			DiscountTypePercentage,
			DiscountTypeFixed,
		)),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
	)
}

// =====================================================
// VOUCHER RESPONSE
// =====================================================
type VoucherResponse struct {
	ID               uuid.UUID       `json:"id"`
	Code             string          `json:"code"`
	DiscountType     string          `json:"discount_type"`
	DiscountValue    decimal.Decimal `json:"discount_value"`
	MaxDiscountValue decimal.Decimal `json:"max_discount_value"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
}

func BuildVoucherResponse(v *Voucher) VoucherResponse {
	return VoucherResponse{
		ID:               v.ID,
		Code:             v.Code,
		DiscountType:     v.DiscountType,
		DiscountValue:    v.DiscountValue,
		MaxDiscountValue: v.MaxDiscountValue,
		StartDate:        v.StartDate,
		EndDate:          v.EndDate,
	}
}
