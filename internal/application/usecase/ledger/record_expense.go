package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
)

// RecordExpenseInput represents the input for posting a payable.
type RecordExpenseInput struct {
	Payload entity.ExpensePayload
}

// RecordExpenseOutput represents the output of posting a payable.
type RecordExpenseOutput struct {
	Expense *entity.ExpenseEntry
}

// RecordExpenseUseCase posts a payable through the engine and stores it.
type RecordExpenseUseCase struct {
	engine      *Engine
	expenseRepo adapter.ExpenseRepository
}

// NewRecordExpenseUseCase creates a new RecordExpenseUseCase instance.
func NewRecordExpenseUseCase(engine *Engine, expenseRepo adapter.ExpenseRepository) *RecordExpenseUseCase {
	return &RecordExpenseUseCase{
		engine:      engine,
		expenseRepo: expenseRepo,
	}
}

// Execute performs the posting.
func (uc *RecordExpenseUseCase) Execute(ctx context.Context, input RecordExpenseInput) (*RecordExpenseOutput, error) {
	result := uc.engine.PostExpense(input.Payload)
	if !result.Success {
		return nil, result.AsError()
	}

	if err := uc.expenseRepo.Create(ctx, result.Data); err != nil {
		return nil, fmt.Errorf("failed to create expense entry: %w", err)
	}

	slog.Info("Expense posted",
		"expense_id", result.Data.ID,
		"vendor", result.Data.Vendor,
		"amount", result.Data.Amount.String(),
	)

	return &RecordExpenseOutput{Expense: result.Data}, nil
}
