package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// PayExpenseInput represents the input for paying an expense.
type PayExpenseInput struct {
	ExpenseID uuid.UUID
	PaidDate  time.Time
}

// PayExpenseOutput represents the output of paying an expense.
type PayExpenseOutput struct {
	Expense *entity.ExpenseEntry
}

// PayExpenseUseCase pays an expense through the engine, stores it and publishes the events.
type PayExpenseUseCase struct {
	engine      *Engine
	expenseRepo adapter.ExpenseRepository
	publisher   adapter.EventPublisher
	clock       adapter.Clock
}

// NewPayExpenseUseCase creates a new PayExpenseUseCase instance.
func NewPayExpenseUseCase(
	engine *Engine,
	expenseRepo adapter.ExpenseRepository,
	publisher adapter.EventPublisher,
	clock adapter.Clock,
) *PayExpenseUseCase {
	return &PayExpenseUseCase{
		engine:      engine,
		expenseRepo: expenseRepo,
		publisher:   publisher,
		clock:       clock,
	}
}

// Execute performs the payment.
func (uc *PayExpenseUseCase) Execute(ctx context.Context, input PayExpenseInput) (*PayExpenseOutput, error) {
	record, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID)
	if err != nil {
		return nil, err
	}

	paidDate := input.PaidDate
	if paidDate.IsZero() {
		paidDate = uc.clock.Now()
	}

	result := uc.engine.PayExpense(record, paidDate)
	if !result.Success {
		return nil, result.AsError()
	}

	if err := uc.expenseRepo.Update(ctx, result.Data); err != nil {
		return nil, fmt.Errorf("failed to update expense entry: %w", err)
	}

	PublishEvents(ctx, uc.publisher, result.Events, result.Data.ID, valueobject.RecordKindExpense, uc.clock.Now())

	slog.Info("Expense paid",
		"expense_id", result.Data.ID,
		"paid_date", result.Data.PaidDate,
	)

	return &PayExpenseOutput{Expense: result.Data}, nil
}

// RequestExpensePaymentUseCase moves a planned expense into the payment queue.
type RequestExpensePaymentUseCase struct {
	engine      *Engine
	expenseRepo adapter.ExpenseRepository
}

// NewRequestExpensePaymentUseCase creates a new RequestExpensePaymentUseCase instance.
func NewRequestExpensePaymentUseCase(engine *Engine, expenseRepo adapter.ExpenseRepository) *RequestExpensePaymentUseCase {
	return &RequestExpensePaymentUseCase{
		engine:      engine,
		expenseRepo: expenseRepo,
	}
}

// Execute performs the transition.
func (uc *RequestExpensePaymentUseCase) Execute(ctx context.Context, expenseID uuid.UUID) (*PayExpenseOutput, error) {
	record, err := uc.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	result := uc.engine.RequestExpensePayment(record)
	if !result.Success {
		return nil, result.AsError()
	}

	if err := uc.expenseRepo.Update(ctx, result.Data); err != nil {
		return nil, fmt.Errorf("failed to update expense entry: %w", err)
	}

	return &PayExpenseOutput{Expense: result.Data}, nil
}
