package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// CHECKOUT REQUEST
// =====================================================
// CartLine is what the client puts in the cart. Price and Unit are
// display values the client last saw; totals are always recomputed
// from the catalog at checkout.
type CartLine struct {
	ID       uuid.UUID       `json:"id"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Unit     string          `json:"unit"`
}

func (l CartLine) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.ID, validation.Required),
		validation.Field(&l.Quantity, validation.Required, validation.Min(1)),
	)
}

type CheckoutRequest struct {
	Cart      []CartLine `json:"cart"`
	VoucherID *uuid.UUID `json:"voucher_id,omitempty"`
}

func (req CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Cart, validation.Required, validation.Length(1, 100)),
	)
}

// =====================================================
// CANCEL ORDER REQUEST
// =====================================================
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

func (req CancelOrderRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Reason, validation.Required, validation.Length(1, 500)),
	)
}

// =====================================================
// RESPONSES
// =====================================================
type OrderDetailResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type OrderResponse struct {
	ID           uuid.UUID             `json:"id"`
	Code         string                `json:"code"`
	Status       string                `json:"status"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	Discount     decimal.Decimal       `json:"discount"`
	Total        decimal.Decimal       `json:"total"`
	VoucherID    *uuid.UUID            `json:"voucher_id,omitempty"`
	CancelReason *string               `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	Details      []OrderDetailResponse `json:"details,omitempty"`
}

func BuildOrderResponse(order *Order, details []OrderDetail) OrderResponse {
	resp := OrderResponse{
		ID:           order.ID,
		Code:         order.Code,
		Status:       order.Status.String(),
		Subtotal:     order.Subtotal,
		Discount:     order.Discount,
		Total:        order.Total,
		VoucherID:    order.VoucherID,
		CancelReason: order.CancelReason,
		CreatedAt:    order.CreatedAt,
	}

	for i := range details {
		d := &details[i]
		resp.Details = append(resp.Details, OrderDetailResponse{
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			Unit:        d.Unit,
			Price:       d.Price,
			Quantity:    d.Quantity,
			LineTotal:   d.LineTotal(),
		})
	}

	return resp
}
