package service

import (
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/voucher/model"
)

var oneHundred = decimal.NewFromInt(100)

// =====================================================
// DISCOUNT CALCULATOR
// =====================================================
// DiscountCalculator turns a voucher and an order subtotal into a
// discount amount. The result is always within [0, subtotal].
type DiscountCalculator struct{}

func NewDiscountCalculator() DiscountCalculator {
	return DiscountCalculator{}
}

func (DiscountCalculator) Calculate(voucher *model.Voucher, subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch voucher.DiscountType {
	case model.DiscountTypePercentage:
		discount = subtotal.Mul(voucher.DiscountValue).Div(oneHundred)
	case model.DiscountTypeFixed:
		discount = voucher.DiscountValue
	default:
		return decimal.Zero
	}

	// cap either type when a cap is configured
	if voucher.MaxDiscountValue.GreaterThan(decimal.Zero) && discount.GreaterThan(voucher.MaxDiscountValue) {
		discount = voucher.MaxDiscountValue
	}

	// never discount below a zero total
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.LessThan(decimal.Zero) {
		return decimal.Zero
	}

	return discount
}
