package model

import "errors"

const (
	ErrCodeNoPendingOrder = "PAY001"
	ErrCodePaymentFailed  = "PAY002"
	ErrCodeInvalidPayment = "PAY003"
)

var (
	// ErrNoPendingOrder: the user has no order awaiting payment.
	ErrNoPendingOrder = errors.New("no pending order to pay")
	// ErrPaymentFailed: the provider declined or errored.
	ErrPaymentFailed = errors.New("payment failed")
	ErrUnknownMethod = errors.New("unknown payment method")
)

type PaymentError struct {
	Code    string
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

func NewPaymentError(code, message string, err error) *PaymentError {
	return &PaymentError{Code: code, Message: message, Err: err}
}
