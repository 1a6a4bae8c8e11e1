package error

import "errors"

// Ledger domain errors.
var (
	// ErrIncomeNotFound is returned when an income entry is not found.
	ErrIncomeNotFound = errors.New("income entry not found")

	// ErrExpenseNotFound is returned when an expense entry is not found.
	ErrExpenseNotFound = errors.New("expense entry not found")

	// ErrCashAccountNotFound is returned when a cash account is not found.
	ErrCashAccountNotFound = errors.New("cash account not found")

	// ErrInvalidTransition is returned when a record cannot move to the requested state.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInactiveAccount is returned when cash is routed to an inactive account.
	ErrInactiveAccount = errors.New("cash account is inactive")

	// ErrDuplicateSourceRef is returned when an external reference was already ingested.
	ErrDuplicateSourceRef = errors.New("source reference already ingested")

	// ErrInvalidPayload is returned when an ingestion payload is malformed.
	ErrInvalidPayload = errors.New("invalid payload")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPayload     LedgerErrorCode = "LDG-010001"
	ErrCodeInvariantViolation LedgerErrorCode = "LDG-010002"
	ErrCodeInvalidAmount      LedgerErrorCode = "LDG-010003"
	ErrCodeInvalidDate        LedgerErrorCode = "LDG-010004"

	// Lookup errors (02XXXX)
	ErrCodeIncomeNotFound      LedgerErrorCode = "LDG-020001"
	ErrCodeExpenseNotFound     LedgerErrorCode = "LDG-020002"
	ErrCodeCashAccountNotFound LedgerErrorCode = "LDG-020003"

	// Transition errors (03XXXX)
	ErrCodeInvalidTransition LedgerErrorCode = "LDG-030001"
	ErrCodeInactiveAccount   LedgerErrorCode = "LDG-030002"
	ErrCodeDuplicateSource   LedgerErrorCode = "LDG-030003"
	ErrCodeUnexpectedFailure LedgerErrorCode = "LDG-030004"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
