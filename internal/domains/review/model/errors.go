package model

import "errors"

const (
	ErrCodeInvalidReview   = "RVW001"
	ErrCodeAlreadyReviewed = "RVW002"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("product already reviewed by user")
)

type ReviewError struct {
	Code    string
	Message string
	Err     error
}

func (e *ReviewError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ReviewError) Unwrap() error {
	return e.Err
}

func NewReviewError(code, message string, err error) *ReviewError {
	return &ReviewError{Code: code, Message: message, Err: err}
}
