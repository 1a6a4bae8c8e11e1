package error

import "errors"

// Cashflow domain errors.
var (
	// ErrMonthAlreadyClosed is returned when a month already has a P&L snapshot.
	ErrMonthAlreadyClosed = errors.New("month already closed")

	// ErrInvalidMonth is returned when the requested month cannot be closed.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidHorizon is returned for a forecast horizon out of range.
	ErrInvalidHorizon = errors.New("invalid forecast horizon")
)

// CashflowErrorCode defines error codes for cashflow errors.
// Format: CSH-XXYYYY where XX is category and YYYY is specific error.
type CashflowErrorCode string

const (
	ErrCodeInvalidMonth       CashflowErrorCode = "CSH-010001"
	ErrCodeInvalidHorizon     CashflowErrorCode = "CSH-010002"
	ErrCodeMonthAlreadyClosed CashflowErrorCode = "CSH-020001"
)

// CashflowError represents a cashflow error with code and message.
type CashflowError struct {
	Code    CashflowErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CashflowError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CashflowError) Unwrap() error {
	return e.Err
}

// NewCashflowError creates a new CashflowError with the given code and message.
func NewCashflowError(code CashflowErrorCode, message string, err error) *CashflowError {
	return &CashflowError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
