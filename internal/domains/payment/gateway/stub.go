package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/payment/model"
)

// Stub gateways stand in for real provider integrations. They accept
// every charge and mint a provider reference locally, which keeps the
// payment flow end-to-end testable without provider credentials.

// =====================================================
// CREDIT CARD (STUB)
// =====================================================
type creditCardGateway struct {
	enabled bool
}

func NewCreditCardGateway(enabled bool) Gateway {
	return &creditCardGateway{enabled: enabled}
}

func (g *creditCardGateway) Method() string {
	return model.MethodCreditCard
}

func (g *creditCardGateway) Charge(ctx context.Context, orderCode string, amount decimal.Decimal) (string, error) {
	if !g.enabled {
		return "", fmt.Errorf("credit card payments are disabled: %w", model.ErrPaymentFailed)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("invalid charge amount %s: %w", amount, model.ErrPaymentFailed)
	}
	return "cc_" + uuid.NewString(), nil
}

// =====================================================
// PAYPAL (STUB)
// =====================================================
type paypalGateway struct {
	enabled bool
}

func NewPaypalGateway(enabled bool) Gateway {
	return &paypalGateway{enabled: enabled}
}

func (g *paypalGateway) Method() string {
	return model.MethodPaypal
}

func (g *paypalGateway) Charge(ctx context.Context, orderCode string, amount decimal.Decimal) (string, error) {
	if !g.enabled {
		return "", fmt.Errorf("paypal payments are disabled: %w", model.ErrPaymentFailed)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("invalid charge amount %s: %w", amount, model.ErrPaymentFailed)
	}
	return "pp_" + uuid.NewString(), nil
}

// =====================================================
// CASH ON DELIVERY
// =====================================================
// COD charges nothing up front; the order is marked paid and settled
// on delivery.
type codGateway struct{}

func NewCODGateway() Gateway {
	return &codGateway{}
}

func (g *codGateway) Method() string {
	return model.MethodCOD
}

func (g *codGateway) Charge(ctx context.Context, orderCode string, amount decimal.Decimal) (string, error) {
	return "cod_" + orderCode, nil
}
