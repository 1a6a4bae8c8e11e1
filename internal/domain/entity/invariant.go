package entity

import (
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

// ValidateIncomeInvariant checks that the income record's status agrees with its cash facts.
// A RECEIVED or PARTIAL record must carry a received date and a positive received amount.
func ValidateIncomeInvariant(e *IncomeEntry) error {
	if !e.Status.IsValid() {
		return domainerror.NewInvariantError(
			domainerror.ErrCodeIncomeUnknownStatus,
			"INVARIANT VIOLATION: Income has unknown status "+string(e.Status)+".",
		)
	}
	if !e.Category.IsValid() {
		return domainerror.NewInvariantError(
			domainerror.ErrCodeIncomeUnknownCategory,
			"INVARIANT VIOLATION: Income has unknown category "+string(e.Category)+".",
		)
	}
	if !e.AmountExpected.IsPositive() {
		return domainerror.NewInvariantError(
			domainerror.ErrCodeIncomeNonPositiveExpected,
			"INVARIANT VIOLATION: Income expected amount must be positive.",
		)
	}
	if e.AmountReceived.IsNegative() {
		return domainerror.NewInvariantError(
			domainerror.ErrCodeIncomeNegativeReceived,
			"INVARIANT VIOLATION: Income received amount cannot be negative.",
		)
	}
	if e.Status.IsCashBasis() && (e.ReceivedDate == nil || !e.AmountReceived.IsPositive()) {
		return domainerror.NewInvariantError(
			domainerror.ErrCodeIncomeReceivedWithoutFacts,
			"INVARIANT VIOLATION: Income marked "+string(e.Status)+" without valid date or amount.",
		)
	}
	return nil
}

// ValidateExpenseInvariant checks that a PAID expense carries a payment date.
func ValidateExpenseInvariant(e *ExpenseEntry) error {
	if !e.Status.IsValid() {
		return domainerror.NewInvariantError(
			domainerror.ErrCodeExpenseUnknownStatus,
			"INVARIANT VIOLATION: Expense has unknown status "+string(e.Status)+".",
		)
	}
	if !e.Category.IsValid() {
		return domainerror.NewInvariantError(
			domainerror.ErrCodeExpenseUnknownCategory,
			"INVARIANT VIOLATION: Expense has unknown category "+string(e.Category)+".",
		)
	}
	if !e.Type.IsValid() {
		return domainerror.NewInvariantError(
			domainerror.ErrCodeExpenseUnknownType,
			"INVARIANT VIOLATION: Expense has unknown type "+string(e.Type)+".",
		)
	}
	if !e.Amount.IsPositive() {
		return domainerror.NewInvariantError(
			domainerror.ErrCodeExpenseNonPositiveAmount,
			"INVARIANT VIOLATION: Expense amount must be positive.",
		)
	}
	if e.Status == ExpenseStatusPaid && e.PaidDate == nil {
		return domainerror.NewInvariantError(
			domainerror.ErrCodeExpensePaidWithoutDate,
			"INVARIANT VIOLATION: Expense marked PAID without payment date.",
		)
	}
	return nil
}
