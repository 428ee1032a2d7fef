package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// Gateway charges a customer through one payment method. Charge
// returns a provider reference for reconciliation; an error means the
// charge was declined or the provider was unreachable.
type Gateway interface {
	Method() string
	Charge(ctx context.Context, orderCode string, amount decimal.Decimal) (providerRef string, err error)
}

// Registry resolves a gateway by payment method.
type Registry struct {
	gateways map[string]Gateway
}

func NewRegistry(gateways ...Gateway) *Registry {
	r := &Registry{gateways: make(map[string]Gateway, len(gateways))}
	for _, g := range gateways {
		r.gateways[g.Method()] = g
	}
	return r
}

func (r *Registry) Get(method string) (Gateway, bool) {
	g, ok := r.gateways[method]
	return g, ok
}
