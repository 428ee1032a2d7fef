package model

import "errors"

const (
	ErrCodeInsufficientStock = "INV001"
	ErrCodeProductNotFound   = "INV002"
	ErrCodeInvalidQuantity   = "INV003"
)

var (
	// ErrInsufficientStock means the product row exists but holds less
	// stock than requested. The conditional UPDATE never lets quantity
	// go negative.
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

type InventoryError struct {
	Code    string
	Message string
	Err     error
}

func (e *InventoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *InventoryError) Unwrap() error {
	return e.Err
}

func NewInventoryError(code, message string, err error) *InventoryError {
	return &InventoryError{Code: code, Message: message, Err: err}
}
