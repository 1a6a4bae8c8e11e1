package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

func validIncome() *IncomeEntry {
	return &IncomeEntry{
		ID:             uuid.New(),
		AmountExpected: decimal.NewFromInt(10000),
		AmountReceived: decimal.Zero,
		Status:         IncomeStatusPending,
		Category:       IncomeCategoryProjectFee,
		ClientName:     "Acme",
		Date:           time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidateIncomeInvariant(t *testing.T) {
	received := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mutate   func(e *IncomeEntry)
		wantCode domainerror.InvariantErrorCode
	}{
		{
			name:   "pending without receipt facts is valid",
			mutate: func(e *IncomeEntry) {},
		},
		{
			name: "overdue without receipt facts is valid",
			mutate: func(e *IncomeEntry) {
				e.Status = IncomeStatusOverdue
			},
		},
		{
			name: "received with date and amount is valid",
			mutate: func(e *IncomeEntry) {
				e.Status = IncomeStatusReceived
				e.ReceivedDate = &received
				e.AmountReceived = decimal.NewFromInt(10000)
			},
		},
		{
			name: "received without date is rejected",
			mutate: func(e *IncomeEntry) {
				e.Status = IncomeStatusReceived
				e.AmountReceived = decimal.NewFromInt(10000)
			},
			wantCode: domainerror.ErrCodeIncomeReceivedWithoutFacts,
		},
		{
			name: "received with zero amount is rejected",
			mutate: func(e *IncomeEntry) {
				e.Status = IncomeStatusReceived
				e.ReceivedDate = &received
			},
			wantCode: domainerror.ErrCodeIncomeReceivedWithoutFacts,
		},
		{
			name: "partial without date is rejected",
			mutate: func(e *IncomeEntry) {
				e.Status = IncomeStatusPartial
				e.AmountReceived = decimal.NewFromInt(400)
			},
			wantCode: domainerror.ErrCodeIncomeReceivedWithoutFacts,
		},
		{
			name: "zero expected amount is rejected",
			mutate: func(e *IncomeEntry) {
				e.AmountExpected = decimal.Zero
			},
			wantCode: domainerror.ErrCodeIncomeNonPositiveExpected,
		},
		{
			name: "negative received amount is rejected",
			mutate: func(e *IncomeEntry) {
				e.AmountReceived = decimal.NewFromInt(-1)
			},
			wantCode: domainerror.ErrCodeIncomeNegativeReceived,
		},
		{
			name: "unknown status is rejected",
			mutate: func(e *IncomeEntry) {
				e.Status = IncomeStatus("LOST")
			},
			wantCode: domainerror.ErrCodeIncomeUnknownStatus,
		},
		{
			name: "unknown category is rejected",
			mutate: func(e *IncomeEntry) {
				e.Category = IncomeCategory("GRANT")
			},
			wantCode: domainerror.ErrCodeIncomeUnknownCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validIncome()
			tt.mutate(e)

			err := ValidateIncomeInvariant(e)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var invErr *domainerror.InvariantError
			if !errors.As(err, &invErr) {
				t.Fatalf("expected InvariantError, got %v", err)
			}
			if invErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, invErr.Code)
			}
			if !errors.Is(err, domainerror.ErrInvariantViolation) {
				t.Error("expected error to wrap ErrInvariantViolation")
			}
		})
	}
}

func TestValidateExpenseInvariant(t *testing.T) {
	paid := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	base := func() *ExpenseEntry {
		return &ExpenseEntry{
			ID:           uuid.New(),
			Amount:       decimal.NewFromInt(1200),
			IncurredDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			Category:     ExpenseCategoryServer,
			Type:         ExpenseTypeFixed,
			Status:       ExpenseStatusPlanned,
			Vendor:       "Hetzner",
		}
	}

	tests := []struct {
		name     string
		mutate   func(e *ExpenseEntry)
		wantCode domainerror.InvariantErrorCode
	}{
		{name: "planned is valid", mutate: func(e *ExpenseEntry) {}},
		{
			name: "pending payment without date is valid",
			mutate: func(e *ExpenseEntry) {
				e.Status = ExpenseStatusPendingPayment
			},
		},
		{
			name: "paid with date is valid",
			mutate: func(e *ExpenseEntry) {
				e.Status = ExpenseStatusPaid
				e.PaidDate = &paid
			},
		},
		{
			name: "paid without date is rejected",
			mutate: func(e *ExpenseEntry) {
				e.Status = ExpenseStatusPaid
			},
			wantCode: domainerror.ErrCodeExpensePaidWithoutDate,
		},
		{
			name: "zero amount is rejected",
			mutate: func(e *ExpenseEntry) {
				e.Amount = decimal.Zero
			},
			wantCode: domainerror.ErrCodeExpenseNonPositiveAmount,
		},
		{
			name: "unknown type is rejected",
			mutate: func(e *ExpenseEntry) {
				e.Type = ExpenseType("SEASONAL")
			},
			wantCode: domainerror.ErrCodeExpenseUnknownType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := base()
			tt.mutate(e)

			err := ValidateExpenseInvariant(e)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var invErr *domainerror.InvariantError
			if !errors.As(err, &invErr) {
				t.Fatalf("expected InvariantError, got %v", err)
			}
			if invErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, invErr.Code)
			}
		})
	}
}

func TestIncomeEntry_EffectiveDate(t *testing.T) {
	e := validIncome()
	if !e.EffectiveDate().Equal(e.Date) {
		t.Errorf("expected original date when not snoozed")
	}

	snoozed := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	e.ExpectedDate = &snoozed
	if !e.EffectiveDate().Equal(snoozed) {
		t.Errorf("expected snoozed date, got %s", e.EffectiveDate())
	}
}

func TestIncomeEntry_ConvertedDescription(t *testing.T) {
	e := validIncome()
	if got := e.ConvertedDescription(); got != "(Converted)" {
		t.Errorf("expected bare suffix, got %q", got)
	}

	e.Description = "Acme: Website redesign"
	if got := e.ConvertedDescription(); got != "Acme: Website redesign (Converted)" {
		t.Errorf("unexpected description %q", got)
	}
}

func TestTotalOpeningBalance(t *testing.T) {
	now := time.Now()
	active := NewCashAccount("Main", CashAccountBank, decimal.NewFromInt(5000), now)
	petty := NewCashAccount("Drawer", CashAccountPettyCash, decimal.NewFromInt(300), now)
	closed := NewCashAccount("Old", CashAccountBank, decimal.NewFromInt(9999), now)
	closed.IsActive = false

	got := TotalOpeningBalance([]*CashAccount{active, petty, closed})
	if !got.Equal(decimal.NewFromInt(5300)) {
		t.Errorf("expected 5300, got %s", got)
	}
}
