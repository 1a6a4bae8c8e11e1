// Package ledger contains the transaction engine and the use cases that persist its results.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"

	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// TransactionResult is the uniform outcome of every engine operation.
// Callers must check Success before trusting Data.
type TransactionResult[T any] struct {
	Success bool
	Data    T
	Error   string
	Err     error
	Events  []valueobject.LedgerEvent
}

func succeed[T any](data T, events ...valueobject.LedgerEvent) TransactionResult[T] {
	if events == nil {
		events = []valueobject.LedgerEvent{}
	}
	return TransactionResult[T]{
		Success: true,
		Data:    data,
		Events:  events,
	}
}

func fail[T any](err error) TransactionResult[T] {
	return TransactionResult[T]{
		Success: false,
		Error:   err.Error(),
		Err:     err,
		Events:  []valueobject.LedgerEvent{},
	}
}

// recoverResult converts a panic raised inside an engine operation into a failed result.
func recoverResult[T any](res *TransactionResult[T]) {
	rec := recover()
	if rec == nil {
		return
	}
	slog.Error("Ledger engine operation panicked", "panic", rec)
	*res = fail[T](domainerror.NewLedgerError(
		domainerror.ErrCodeUnexpectedFailure,
		"unexpected ledger failure",
		fmt.Errorf("%v", rec),
	))
}

// AsError returns the result's error wrapped as a LedgerError, or nil on success.
func (r TransactionResult[T]) AsError() error {
	if r.Success {
		return nil
	}
	var ledgerErr *domainerror.LedgerError
	if errors.As(r.Err, &ledgerErr) {
		return ledgerErr
	}
	code := domainerror.ErrCodeInvalidTransition
	if errors.Is(r.Err, domainerror.ErrInvariantViolation) {
		code = domainerror.ErrCodeInvariantViolation
	}
	return domainerror.NewLedgerError(code, "ledger transition rejected", r.Err)
}
