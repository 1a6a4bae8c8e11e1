// Package error defines domain-specific errors for the Ledgerly ledger.
package error

import "errors"

// Invariant domain errors.
var (
	// ErrInvariantViolation is returned when a record's status contradicts its cash-movement facts.
	ErrInvariantViolation = errors.New("invariant violation")
)

// InvariantErrorCode defines error codes for invariant violations.
// Format: INV-XXYYYY where XX is category and YYYY is specific error.
type InvariantErrorCode string

const (
	// Income invariants (01XXXX)
	ErrCodeIncomeReceivedWithoutFacts InvariantErrorCode = "INV-010001"
	ErrCodeIncomeNonPositiveExpected  InvariantErrorCode = "INV-010002"
	ErrCodeIncomeNegativeReceived     InvariantErrorCode = "INV-010003"
	ErrCodeIncomeUnknownStatus        InvariantErrorCode = "INV-010004"
	ErrCodeIncomeUnknownCategory      InvariantErrorCode = "INV-010005"

	// Expense invariants (02XXXX)
	ErrCodeExpensePaidWithoutDate   InvariantErrorCode = "INV-020001"
	ErrCodeExpenseNonPositiveAmount InvariantErrorCode = "INV-020002"
	ErrCodeExpenseUnknownStatus     InvariantErrorCode = "INV-020003"
	ErrCodeExpenseUnknownCategory   InvariantErrorCode = "INV-020004"
	ErrCodeExpenseUnknownType       InvariantErrorCode = "INV-020005"
)

// InvariantError represents an invariant violation with code and message.
type InvariantError struct {
	Code    InvariantErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InvariantError) Unwrap() error {
	return e.Err
}

// NewInvariantError creates a new InvariantError wrapping ErrInvariantViolation.
func NewInvariantError(code InvariantErrorCode, message string) *InvariantError {
	return &InvariantError{
		Code:    code,
		Message: message,
		Err:     ErrInvariantViolation,
	}
}
