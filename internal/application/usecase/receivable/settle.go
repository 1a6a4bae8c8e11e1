package receivable

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/application/usecase/ledger"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// SettleInput represents the input for settling a receivable.
type SettleInput struct {
	IncomeID  uuid.UUID
	AccountID *uuid.UUID
}

// SettleOutput represents the output of a settlement. Realized is nil when the
// entry was settled in place.
type SettleOutput struct {
	Original *entity.IncomeEntry
	Realized *entity.IncomeEntry
	InPlace  bool
}

// SettleUseCase marks a stale receivable as received. The original is archived
// and a new RECEIVED entry dated today carries the cash, except for
// retainer-linked entries, which are verified in place to keep their link.
type SettleUseCase struct {
	engine      *ledger.Engine
	incomeRepo  adapter.IncomeRepository
	accountRepo adapter.CashAccountRepository
	publisher   adapter.EventPublisher
	clock       adapter.Clock
}

// NewSettleUseCase creates a new SettleUseCase instance.
func NewSettleUseCase(
	engine *ledger.Engine,
	incomeRepo adapter.IncomeRepository,
	accountRepo adapter.CashAccountRepository,
	publisher adapter.EventPublisher,
	clock adapter.Clock,
) *SettleUseCase {
	return &SettleUseCase{
		engine:      engine,
		incomeRepo:  incomeRepo,
		accountRepo: accountRepo,
		publisher:   publisher,
		clock:       clock,
	}
}

// Execute performs the settlement.
func (uc *SettleUseCase) Execute(ctx context.Context, input SettleInput) (*SettleOutput, error) {
	original, err := loadOpen(ctx, uc.incomeRepo, input.IncomeID)
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

	if original.IsRetainerLinked() {
		return uc.settleInPlace(ctx, original, account)
	}
	return uc.archiveAndRecreate(ctx, original, account)
}

func (uc *SettleUseCase) settleInPlace(ctx context.Context, original *entity.IncomeEntry, account *entity.CashAccount) (*SettleOutput, error) {
	today := uc.clock.Now()

	result := uc.engine.VerifyIncome(original, today, account, nil)
	if !result.Success {
		return nil, settlementFailed(result.AsError())
	}
	settled := result.Data
	settled.ClearHold()

	if err := uc.incomeRepo.Update(ctx, settled); err != nil {
		return nil, fmt.Errorf("failed to settle income entry: %w", err)
	}
	ledger.PublishEvents(ctx, uc.publisher, result.Events, settled.ID, valueobject.RecordKindIncome, today)

	slog.Info("Receivable settled in place",
		"income_id", settled.ID,
		"retainer_instance_id", settled.RetainerInstanceID,
	)

	return &SettleOutput{Original: settled, InPlace: true}, nil
}

func (uc *SettleUseCase) archiveAndRecreate(ctx context.Context, original *entity.IncomeEntry, account *entity.CashAccount) (*SettleOutput, error) {
	today := uc.clock.Now()

	ingested := uc.engine.IngestIncome(entity.IncomePayload{
		AmountExpected: original.AmountExpected,
		Category:       original.Category,
		ClientName:     original.ClientName,
		Description:    original.Description,
		ServiceName:    original.ServiceName,
		Date:           today,
	})
	if !ingested.Success {
		return nil, settlementFailed(ingested.AsError())
	}

	verified := uc.engine.VerifyIncome(ingested.Data, today, account, nil)
	if !verified.Success {
		return nil, settlementFailed(verified.AsError())
	}
	realized := verified.Data
	realized.SupersedesID = &original.ID

	archived := uc.engine.ArchiveIncome(original, realized.ID)
	if !archived.Success {
		return nil, settlementFailed(archived.AsError())
	}

	if err := uc.incomeRepo.ApplySettlement(ctx, archived.Data, realized); err != nil {
		if errors.Is(err, domainerror.ErrAlreadySettled) {
			return nil, domainerror.NewReceivableError(domainerror.ErrCodeAlreadySettled, "receivable was already settled", err)
		}
		return nil, fmt.Errorf("failed to apply settlement: %w", err)
	}

	ledger.PublishEvents(ctx, uc.publisher, verified.Events, realized.ID, valueobject.RecordKindIncome, today)
	ledger.PublishEvents(ctx, uc.publisher, archived.Events, original.ID, valueobject.RecordKindIncome, today)

	slog.Info("Receivable settled",
		"original_id", original.ID,
		"realized_id", realized.ID,
		"amount", realized.AmountReceived.String(),
	)

	return &SettleOutput{Original: archived.Data, Realized: realized}, nil
}

func settlementFailed(err error) error {
	return domainerror.NewReceivableError(domainerror.ErrCodeSettlementFailed, "settlement rejected", err)
}
