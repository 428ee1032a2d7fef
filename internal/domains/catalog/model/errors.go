package model

import "errors"

const (
	ErrCodeProductNotFound  = "CAT001"
	ErrCodeCategoryNotFound = "CAT002"
	ErrCodeInvalidProduct   = "CAT003"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// CatalogError carries a short code alongside the user-facing message
type CatalogError struct {
	Code    string
	Message string
	Err     error
}

func (e *CatalogError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

func NewCatalogError(code, message string, err error) *CatalogError {
	return &CatalogError{Code: code, Message: message, Err: err}
}
