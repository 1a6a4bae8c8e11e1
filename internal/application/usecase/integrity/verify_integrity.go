// Package integrity audits stored ledger records against the entity invariants.
package integrity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
)

// Violation describes one stored record that breaks a ledger rule.
type Violation struct {
	RecordKind string
	RecordID   uuid.UUID
	Message    string
}

// VerifyIntegrityOutput represents the output of an integrity audit.
type VerifyIntegrityOutput struct {
	IncomeChecked  int
	ExpenseChecked int
	Violations     []Violation
}

// Passed reports whether the audit found nothing.
func (o *VerifyIntegrityOutput) Passed() bool {
	return len(o.Violations) == 0
}

// VerifyIntegrityUseCase re-runs the invariants over every stored record and
// checks the supersession links written by settlements.
type VerifyIntegrityUseCase struct {
	incomeRepo  adapter.IncomeRepository
	expenseRepo adapter.ExpenseRepository
}

// NewVerifyIntegrityUseCase creates a new VerifyIntegrityUseCase instance.
func NewVerifyIntegrityUseCase(incomeRepo adapter.IncomeRepository, expenseRepo adapter.ExpenseRepository) *VerifyIntegrityUseCase {
	return &VerifyIntegrityUseCase{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
	}
}

// Execute runs the audit.
func (uc *VerifyIntegrityUseCase) Execute(ctx context.Context) (*VerifyIntegrityOutput, error) {
	income, err := uc.incomeRepo.FindByFilter(ctx, adapter.IncomeFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load income entries: %w", err)
	}
	expenses, err := uc.expenseRepo.FindByFilter(ctx, adapter.ExpenseFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load expense entries: %w", err)
	}

	output := &VerifyIntegrityOutput{
		IncomeChecked:  len(income),
		ExpenseChecked: len(expenses),
		Violations:     make([]Violation, 0),
	}

	byID := make(map[uuid.UUID]*entity.IncomeEntry, len(income))
	for _, e := range income {
		byID[e.ID] = e
	}

	for _, e := range income {
		if err := entity.ValidateIncomeInvariant(e); err != nil {
			output.add("income", e.ID, err.Error())
		}
		if e.Status == entity.IncomeStatusArchived && e.SupersededByID == nil {
			output.add("income", e.ID, "archived without a superseding record")
		}
		if e.SupersededByID != nil {
			next, ok := byID[*e.SupersededByID]
			if !ok {
				output.add("income", e.ID, fmt.Sprintf("superseding record %s is missing", *e.SupersededByID))
			} else if next.SupersedesID == nil || *next.SupersedesID != e.ID {
				output.add("income", e.ID, fmt.Sprintf("superseding record %s does not link back", next.ID))
			}
		}
	}

	for _, e := range expenses {
		if err := entity.ValidateExpenseInvariant(e); err != nil {
			output.add("expense", e.ID, err.Error())
		}
	}

	if output.Passed() {
		slog.Info("Integrity check passed", "income", output.IncomeChecked, "expenses", output.ExpenseChecked)
	} else {
		slog.Warn("Integrity check found violations", "count", len(output.Violations))
	}
	return output, nil
}

func (o *VerifyIntegrityOutput) add(kind string, id uuid.UUID, message string) {
	o.Violations = append(o.Violations, Violation{RecordKind: kind, RecordID: id, Message: message})
}
