package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
)

// RecordIncomeInput represents the input for recording a receivable.
type RecordIncomeInput struct {
	Payload entity.IncomePayload
}

// RecordIncomeOutput represents the output of recording a receivable.
type RecordIncomeOutput struct {
	Income *entity.IncomeEntry
}

// RecordIncomeUseCase ingests a receivable through the engine and stores it.
type RecordIncomeUseCase struct {
	engine     *Engine
	incomeRepo adapter.IncomeRepository
}

// NewRecordIncomeUseCase creates a new RecordIncomeUseCase instance.
func NewRecordIncomeUseCase(engine *Engine, incomeRepo adapter.IncomeRepository) *RecordIncomeUseCase {
	return &RecordIncomeUseCase{
		engine:     engine,
		incomeRepo: incomeRepo,
	}
}

// Execute performs the ingestion.
func (uc *RecordIncomeUseCase) Execute(ctx context.Context, input RecordIncomeInput) (*RecordIncomeOutput, error) {
	if ref := input.Payload.SourceRefID; ref != nil && *ref != "" {
		existing, err := uc.incomeRepo.FindBySourceRef(ctx, *ref)
		if err != nil && !errors.Is(err, domainerror.ErrIncomeNotFound) {
			return nil, fmt.Errorf("failed to check source reference: %w", err)
		}
		if existing != nil {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeDuplicateSource,
				fmt.Sprintf("source reference %q already ingested as %s", *ref, existing.ID),
				domainerror.ErrDuplicateSourceRef,
			)
		}
	}

	result := uc.engine.IngestIncome(input.Payload)
	if !result.Success {
		return nil, result.AsError()
	}

	if err := uc.incomeRepo.Create(ctx, result.Data); err != nil {
		return nil, fmt.Errorf("failed to create income entry: %w", err)
	}

	slog.Info("Income recorded",
		"income_id", result.Data.ID,
		"client", result.Data.ClientName,
		"amount_expected", result.Data.AmountExpected.String(),
	)

	return &RecordIncomeOutput{Income: result.Data}, nil
}
