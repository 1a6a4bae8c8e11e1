package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// VerifyIncomeInput represents the input for verifying a receipt.
type VerifyIncomeInput struct {
	IncomeID       uuid.UUID
	ReceivedDate   time.Time
	AccountID      *uuid.UUID
	VerifiedAmount *decimal.Decimal
	// Partial records VerifiedAmount as a cumulative partial receipt.
	Partial bool
}

// VerifyIncomeOutput represents the output of verifying a receipt.
type VerifyIncomeOutput struct {
	Income *entity.IncomeEntry
}

// VerifyIncomeUseCase verifies a receipt through the engine, stores the result
// and publishes the engine's events.
type VerifyIncomeUseCase struct {
	engine      *Engine
	incomeRepo  adapter.IncomeRepository
	accountRepo adapter.CashAccountRepository
	publisher   adapter.EventPublisher
	clock       adapter.Clock
}

// NewVerifyIncomeUseCase creates a new VerifyIncomeUseCase instance.
func NewVerifyIncomeUseCase(
	engine *Engine,
	incomeRepo adapter.IncomeRepository,
	accountRepo adapter.CashAccountRepository,
	publisher adapter.EventPublisher,
	clock adapter.Clock,
) *VerifyIncomeUseCase {
	return &VerifyIncomeUseCase{
		engine:      engine,
		incomeRepo:  incomeRepo,
		accountRepo: accountRepo,
		publisher:   publisher,
		clock:       clock,
	}
}

// Execute performs the verification.
func (uc *VerifyIncomeUseCase) Execute(ctx context.Context, input VerifyIncomeInput) (*VerifyIncomeOutput, error) {
	record, err := uc.incomeRepo.FindByID(ctx, input.IncomeID)
	if err != nil {
		return nil, err
	}

	var account *entity.CashAccount
	if input.AccountID != nil {
		account, err = uc.accountRepo.FindByID(ctx, *input.AccountID)
		if err != nil {
			return nil, err
		}
	}

	receivedDate := input.ReceivedDate
	if receivedDate.IsZero() {
		receivedDate = uc.clock.Now()
	}

	var result TransactionResult[*entity.IncomeEntry]
	if input.Partial && input.VerifiedAmount != nil {
		result = uc.engine.VerifyPartialIncome(record, receivedDate, account, *input.VerifiedAmount)
	} else {
		result = uc.engine.VerifyIncome(record, receivedDate, account, input.VerifiedAmount)
	}
	if !result.Success {
		return nil, result.AsError()
	}

	if err := uc.incomeRepo.Update(ctx, result.Data); err != nil {
		return nil, fmt.Errorf("failed to update income entry: %w", err)
	}

	PublishEvents(ctx, uc.publisher, result.Events, result.Data.ID, valueobject.RecordKindIncome, uc.clock.Now())

	slog.Info("Income verified",
		"income_id", result.Data.ID,
		"status", result.Data.Status,
		"amount_received", result.Data.AmountReceived.String(),
	)

	return &VerifyIncomeOutput{Income: result.Data}, nil
}
