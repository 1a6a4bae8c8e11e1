package error

import "errors"

// Receivable lifecycle errors.
var (
	// ErrAlreadySettled is returned when a receivable was already archived by a settlement.
	ErrAlreadySettled = errors.New("receivable already settled")

	// ErrNotOnHold is returned when resolving a receivable that is not held.
	ErrNotOnHold = errors.New("receivable is not on hold")

	// ErrAlreadyOnHold is returned when holding a receivable twice.
	ErrAlreadyOnHold = errors.New("receivable is already on hold")

	// ErrReceivableClosed is returned when the receivable is already received or archived.
	ErrReceivableClosed = errors.New("receivable is closed")

	// ErrInvalidHoldCounterpart is returned for an unknown hold counterpart tag.
	ErrInvalidHoldCounterpart = errors.New("invalid hold counterpart")

	// ErrInvalidResolveAction is returned for an unknown resolve action.
	ErrInvalidResolveAction = errors.New("invalid resolve action")

	// ErrMissingDate is returned when a rescheduling operation has no date.
	ErrMissingDate = errors.New("date is required")

	// ErrPastDate is returned when a snooze date lies before today.
	ErrPastDate = errors.New("date is in the past")

	// ErrMissingHoldReason is returned when a hold has no reason.
	ErrMissingHoldReason = errors.New("hold reason is required")
)

// ReceivableErrorCode defines error codes for receivable lifecycle errors.
// Format: RCV-XXYYYY where XX is category and YYYY is specific error.
type ReceivableErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidHoldCounterpart ReceivableErrorCode = "RCV-010001"
	ErrCodeInvalidResolveAction   ReceivableErrorCode = "RCV-010002"
	ErrCodeMissingDate            ReceivableErrorCode = "RCV-010003"
	ErrCodeMissingHoldReason      ReceivableErrorCode = "RCV-010004"
	ErrCodePastDate               ReceivableErrorCode = "RCV-010005"

	// State errors (02XXXX)
	ErrCodeAlreadySettled   ReceivableErrorCode = "RCV-020001"
	ErrCodeNotOnHold        ReceivableErrorCode = "RCV-020002"
	ErrCodeAlreadyOnHold    ReceivableErrorCode = "RCV-020003"
	ErrCodeReceivableClosed ReceivableErrorCode = "RCV-020004"
	ErrCodeSettlementFailed ReceivableErrorCode = "RCV-020005"

	// Lookup errors (03XXXX)
	ErrCodeReceivableNotFound ReceivableErrorCode = "RCV-030001"
)

// ReceivableError represents a receivable lifecycle error with code and message.
type ReceivableError struct {
	Code    ReceivableErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReceivableError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReceivableError) Unwrap() error {
	return e.Err
}

// NewReceivableError creates a new ReceivableError with the given code and message.
func NewReceivableError(code ReceivableErrorCode, message string, err error) *ReceivableError {
	return &ReceivableError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
