package receivable

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/application/usecase/ledger"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// ResolveHoldInput represents the input for resolving a hold.
type ResolveHoldInput struct {
	IncomeID  uuid.UUID
	Action    valueobject.ResolveAction
	NewDate   time.Time  // Required for ResolveNewDate
	AccountID *uuid.UUID // Optional destination for ResolveReceived
}

// ResolveHoldOutput represents the output of resolving a hold.
type ResolveHoldOutput struct {
	Income     *entity.IncomeEntry
	Settlement *SettleOutput
}

// ResolveHoldUseCase takes a receivable off hold, either settling it or
// rescheduling it back into normal tracking.
type ResolveHoldUseCase struct {
	engine     *ledger.Engine
	incomeRepo adapter.IncomeRepository
	settle     *SettleUseCase
}

// NewResolveHoldUseCase creates a new ResolveHoldUseCase instance.
func NewResolveHoldUseCase(engine *ledger.Engine, incomeRepo adapter.IncomeRepository, settle *SettleUseCase) *ResolveHoldUseCase {
	return &ResolveHoldUseCase{
		engine:     engine,
		incomeRepo: incomeRepo,
		settle:     settle,
	}
}

// Execute resolves the hold.
func (uc *ResolveHoldUseCase) Execute(ctx context.Context, input ResolveHoldInput) (*ResolveHoldOutput, error) {
	if !input.Action.IsValid() {
		return nil, domainerror.NewReceivableError(
			domainerror.ErrCodeInvalidResolveAction,
			fmt.Sprintf("unknown resolve action %q", input.Action),
			domainerror.ErrInvalidResolveAction,
		)
	}
	if input.Action == valueobject.ResolveNewDate && input.NewDate.IsZero() {
		return nil, domainerror.NewReceivableError(domainerror.ErrCodeMissingDate, "new date is required", domainerror.ErrMissingDate)
	}

	entry, err := loadOpen(ctx, uc.incomeRepo, input.IncomeID)
	if err != nil {
		return nil, err
	}
	if !entry.IsOnHold {
		return nil, domainerror.NewReceivableError(domainerror.ErrCodeNotOnHold, "receivable is not on hold", domainerror.ErrNotOnHold)
	}

	if input.Action == valueobject.ResolveReceived {
		settlement, err := uc.settle.Execute(ctx, SettleInput{IncomeID: entry.ID, AccountID: input.AccountID})
		if err != nil {
			return nil, err
		}
		income := settlement.Original
		if settlement.Realized != nil {
			income = settlement.Realized
		}
		return &ResolveHoldOutput{Income: income, Settlement: settlement}, nil
	}

	result := uc.engine.RescheduleIncome(entry, input.NewDate)
	if !result.Success {
		return nil, result.AsError()
	}
	if err := uc.incomeRepo.Update(ctx, result.Data); err != nil {
		return nil, fmt.Errorf("failed to reschedule income entry: %w", err)
	}

	slog.Info("Hold resolved with new date",
		"income_id", result.Data.ID,
		"expected_date", result.Data.ExpectedDate.Format(valueobject.DateLayout),
	)

	return &ResolveHoldOutput{Income: result.Data}, nil
}
