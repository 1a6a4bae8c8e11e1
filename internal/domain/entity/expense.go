package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseStatus represents the lifecycle state of a payable.
type ExpenseStatus string

const (
	ExpenseStatusPlanned        ExpenseStatus = "PLANNED"
	ExpenseStatusPendingPayment ExpenseStatus = "PENDING_PAYMENT"
	ExpenseStatusPaid           ExpenseStatus = "PAID"
)

// IsValid reports whether the status is known.
func (s ExpenseStatus) IsValid() bool {
	return s == ExpenseStatusPlanned || s == ExpenseStatusPendingPayment || s == ExpenseStatusPaid
}

// ExpenseCategory classifies a payable.
type ExpenseCategory string

const (
	ExpenseCategorySalary    ExpenseCategory = "SALARY"
	ExpenseCategoryTools     ExpenseCategory = "TOOLS"
	ExpenseCategoryOffice    ExpenseCategory = "OFFICE"
	ExpenseCategoryMarketing ExpenseCategory = "MARKETING"
	ExpenseCategoryServer    ExpenseCategory = "SERVER"
	ExpenseCategoryMisc      ExpenseCategory = "MISC"
)

// IsValid reports whether the category is known.
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategorySalary, ExpenseCategoryTools, ExpenseCategoryOffice,
		ExpenseCategoryMarketing, ExpenseCategoryServer, ExpenseCategoryMisc:
		return true
	}
	return false
}

// ExpenseType tells recurring spend apart from one-off spend.
type ExpenseType string

const (
	ExpenseTypeFixed    ExpenseType = "FIXED"
	ExpenseTypeVariable ExpenseType = "VARIABLE"
	ExpenseTypeOneOff   ExpenseType = "ONE_OFF"
)

// IsValid reports whether the type is known.
func (t ExpenseType) IsValid() bool {
	return t == ExpenseTypeFixed || t == ExpenseTypeVariable || t == ExpenseTypeOneOff
}

// IsRecurring reports whether the expense counts toward burn.
func (t ExpenseType) IsRecurring() bool {
	return t != ExpenseTypeOneOff
}

// ExpenseEntry represents a payable in the ledger.
type ExpenseEntry struct {
	ID              uuid.UUID
	Amount          decimal.Decimal
	IncurredDate    time.Time
	PaidDate        *time.Time
	Category        ExpenseCategory
	Type            ExpenseType
	Status          ExpenseStatus
	Vendor          string
	IsTaxDeductible bool
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Clone returns a copy of the entry that shares no pointers with the original.
func (e *ExpenseEntry) Clone() *ExpenseEntry {
	c := *e
	c.PaidDate = cloneTime(e.PaidDate)
	return &c
}

// ExpensePayload is the input used to post a payable.
type ExpensePayload struct {
	Amount          decimal.Decimal
	IncurredDate    time.Time
	Category        ExpenseCategory
	Type            ExpenseType
	Vendor          string
	IsTaxDeductible bool
	Description     string
}
