package model

import "errors"

const (
	ErrCodeEmptyCart         = "ORD001"
	ErrCodeInvalidCart       = "ORD002"
	ErrCodeInsufficientStock = "ORD003"
	ErrCodeInvalidTransition = "ORD004"
	ErrCodeVoucherRejected   = "ORD005"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyCart     = errors.New("cart is empty")
	// ErrInvalidTransition: the requested action is not allowed from the
	// order's current status.
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrNotOrderOwner: the order exists but belongs to another user.
	// Surfaced as not found to avoid leaking order existence.
	ErrNotOrderOwner = errors.New("order does not belong to user")
)

type OrderError struct {
	Code    string
	Message string
	Err     error
}

func (e *OrderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *OrderError) Unwrap() error {
	return e.Err
}

func NewOrderError(code, message string, err error) *OrderError {
	return &OrderError{Code: code, Message: message, Err: err}
}
