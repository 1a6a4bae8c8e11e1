package error

import "errors"

// External integration errors.
var (
	// ErrInvalidInvoiceEvent is returned when an external invoice event fails schema validation.
	ErrInvalidInvoiceEvent = errors.New("invalid invoice event")

	// ErrUnsupportedSourceSystem is returned when an event comes from an unknown system.
	ErrUnsupportedSourceSystem = errors.New("unsupported source system")
)

// IntegrationErrorCode defines error codes for integration errors.
// Format: INT-XXYYYY where XX is category and YYYY is specific error.
type IntegrationErrorCode string

const (
	ErrCodeInvalidInvoiceEvent     IntegrationErrorCode = "INT-010001"
	ErrCodeUnsupportedSourceSystem IntegrationErrorCode = "INT-010002"
	ErrCodeInvoiceIngestFailed     IntegrationErrorCode = "INT-020001"
)

// IntegrationError represents an integration error with code and message.
type IntegrationError struct {
	Code    IntegrationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *IntegrationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *IntegrationError) Unwrap() error {
	return e.Err
}

// NewIntegrationError creates a new IntegrationError with the given code and message.
func NewIntegrationError(code IntegrationErrorCode, message string, err error) *IntegrationError {
	return &IntegrationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
