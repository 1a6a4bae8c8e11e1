package ledger

import (
	"context"
	"fmt"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
)

// ListIncomeUseCase reads income entries through the store's filtered read.
type ListIncomeUseCase struct {
	incomeRepo adapter.IncomeRepository
}

// NewListIncomeUseCase creates a new ListIncomeUseCase instance.
func NewListIncomeUseCase(incomeRepo adapter.IncomeRepository) *ListIncomeUseCase {
	return &ListIncomeUseCase{incomeRepo: incomeRepo}
}

// Execute returns the matching entries.
func (uc *ListIncomeUseCase) Execute(ctx context.Context, filter adapter.IncomeFilter) ([]*entity.IncomeEntry, error) {
	entries, err := uc.incomeRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list income entries: %w", err)
	}
	return entries, nil
}

// ListExpensesUseCase reads expense entries through the store's filtered read.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{expenseRepo: expenseRepo}
}

// Execute returns the matching entries.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, filter adapter.ExpenseFilter) ([]*entity.ExpenseEntry, error) {
	entries, err := uc.expenseRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense entries: %w", err)
	}
	return entries, nil
}
