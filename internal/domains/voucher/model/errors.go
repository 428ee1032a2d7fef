package model

import "errors"

const (
	ErrCodeVoucherNotFound   = "VCH001"
	ErrCodeVoucherInvalid    = "VCH002"
	ErrCodeAlreadyGranted    = "VCH003"
	ErrCodeVoucherExhausted  = "VCH004"
	ErrCodeVoucherNotGranted = "VCH005"
	ErrCodeInvalidVoucher    = "VCH006"
)

var (
	ErrVoucherNotFound = errors.New("voucher not found")
	// ErrVoucherInvalid covers inactive vouchers and vouchers outside
	// their date window.
	ErrVoucherInvalid = errors.New("voucher is not valid")
	// ErrAlreadyGranted: the user already holds this voucher.
	ErrAlreadyGranted = errors.New("voucher already granted to user")
	// ErrVoucherExhausted: no redemptions remaining.
	ErrVoucherExhausted = errors.New("voucher has no redemptions left")
	// ErrVoucherNotGranted: a voucher not held by the user is not
	// applicable even if globally valid.
	ErrVoucherNotGranted = errors.New("voucher not granted to user")
)

type VoucherError struct {
	Code    string
	Message string
	Err     error
}

func (e *VoucherError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *VoucherError) Unwrap() error {
	return e.Err
}

func NewVoucherError(code, message string, err error) *VoucherError {
	return &VoucherError{Code: code, Message: message, Err: err}
}
