package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// DISCOUNT TYPE CONSTANTS
// =====================================================
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// =====================================================
// ENTITY: Voucher
// =====================================================
type Voucher struct {
	ID               uuid.UUID       `json:"id"`
	Code             string          `json:"code"`
	IsActive         bool            `json:"is_active"`
	DiscountType     string          `json:"discount_type"` // percentage | fixed
	DiscountValue    decimal.Decimal `json:"discount_value"`
	MaxDiscountValue decimal.Decimal `json:"max_discount_value"`
	Quantity         int             `json:"quantity"` // remaining redemptions, never negative
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	CreatedAt        time.Time       `json:"created_at"`
}

// InDateWindow checks only the validity period. Remaining quantity is
// deliberately not part of validity: grants consume it through a
// conditional decrement, and held vouchers no longer depend on it.
func (v *Voucher) InDateWindow(now time.Time) bool {
	return !now.Before(v.StartDate) && !now.After(v.EndDate)
}

// =====================================================
// ENTITY: UserVoucher (assignment)
// =====================================================
// A user holds at most one instance of a given voucher. The row is
// removed on redemption.
type UserVoucher struct {
	UserID    uuid.UUID `json:"user_id"`
	VoucherID uuid.UUID `json:"voucher_id"`
	GrantedAt time.Time `json:"granted_at"`
}
