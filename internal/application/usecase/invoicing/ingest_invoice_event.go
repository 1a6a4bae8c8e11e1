// Package invoicing ingests events from the external invoicing system.
package invoicing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/application/usecase/ledger"
	"github.com/ledgerly/backend/internal/domain/entity"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// IngestInvoiceEventOutput represents the output of ingesting an invoice event.
type IngestInvoiceEventOutput struct {
	Income *entity.IncomeEntry
	// Duplicate is set when the event's reference was already ingested and
	// the event carries nothing newer than the stored record.
	Duplicate bool
	// Updated is set when the event advanced an already ingested record.
	Updated bool
}

// IngestInvoiceEventUseCase translates an invoice event and routes it through
// the transaction engine. A later event for a known reference advances the
// open record; redelivered or stale events are acknowledged without effect.
type IngestInvoiceEventUseCase struct {
	translator adapter.InvoiceEventTranslator
	engine     *ledger.Engine
	incomeRepo adapter.IncomeRepository
	publisher  adapter.EventPublisher
	clock      adapter.Clock
}

// NewIngestInvoiceEventUseCase creates a new IngestInvoiceEventUseCase instance.
func NewIngestInvoiceEventUseCase(
	translator adapter.InvoiceEventTranslator,
	engine *ledger.Engine,
	incomeRepo adapter.IncomeRepository,
	publisher adapter.EventPublisher,
	clock adapter.Clock,
) *IngestInvoiceEventUseCase {
	return &IngestInvoiceEventUseCase{
		translator: translator,
		engine:     engine,
		incomeRepo: incomeRepo,
		publisher:  publisher,
		clock:      clock,
	}
}

// Execute ingests the event.
func (uc *IngestInvoiceEventUseCase) Execute(ctx context.Context, event entity.IncomingInvoiceEvent) (*IngestInvoiceEventOutput, error) {
	payload, err := uc.translator.TransformEvent(event)
	if err != nil {
		return nil, err
	}

	existing, err := uc.incomeRepo.FindBySourceRef(ctx, *payload.SourceRefID)
	if err != nil && !errors.Is(err, domainerror.ErrIncomeNotFound) {
		return nil, fmt.Errorf("failed to check source reference: %w", err)
	}
	if existing != nil {
		return uc.advance(ctx, event, existing, payload)
	}

	ingested := uc.engine.IngestIncome(*payload)
	if !ingested.Success {
		return nil, ingestFailed(ingested.AsError())
	}

	income, events, err := uc.applyExternalStatus(ingested.Data, payload)
	if err != nil {
		return nil, err
	}

	if err := uc.incomeRepo.Create(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to create income entry: %w", err)
	}
	ledger.PublishEvents(ctx, uc.publisher, events, income.ID, valueobject.RecordKindIncome, uc.clock.Now())

	slog.Info("Invoice event ingested",
		"external_id", event.ExternalID,
		"income_id", income.ID,
		"external_status", event.ExternalStatus,
		"status", income.Status,
	)

	return &IngestInvoiceEventOutput{Income: income}, nil
}

// advance applies a later event to a record ingested earlier. The record is
// left alone once it is closed or when the event reports nothing newer.
func (uc *IngestInvoiceEventUseCase) advance(
	ctx context.Context,
	event entity.IncomingInvoiceEvent,
	existing *entity.IncomeEntry,
	payload *entity.IncomePayload,
) (*IngestInvoiceEventOutput, error) {
	if !advancesRecord(existing, payload) {
		slog.Info("Invoice event already ingested",
			"external_id", event.ExternalID,
			"income_id", existing.ID,
			"external_status", event.ExternalStatus,
			"status", existing.Status,
		)
		return &IngestInvoiceEventOutput{Income: existing, Duplicate: true}, nil
	}

	updated, events, err := uc.applyExternalStatus(existing, payload)
	if err != nil {
		return nil, err
	}

	if err := uc.incomeRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, domainerror.ErrAlreadySettled) {
			return &IngestInvoiceEventOutput{Income: existing, Duplicate: true}, nil
		}
		return nil, fmt.Errorf("failed to update income entry: %w", err)
	}
	ledger.PublishEvents(ctx, uc.publisher, events, updated.ID, valueobject.RecordKindIncome, uc.clock.Now())

	slog.Info("Invoice event applied to existing income",
		"external_id", event.ExternalID,
		"income_id", updated.ID,
		"external_status", event.ExternalStatus,
		"from", existing.Status,
		"to", updated.Status,
	)

	return &IngestInvoiceEventOutput{Income: updated, Updated: true}, nil
}

// advancesRecord reports whether the mapped status moves the stored record
// forward. Receipts only grow and settled records never reopen.
func advancesRecord(existing *entity.IncomeEntry, payload *entity.IncomePayload) bool {
	if existing.Status.IsTerminal() || existing.SupersededByID != nil {
		return false
	}
	if existing.Status == entity.IncomeStatusReceived {
		return false
	}
	switch payload.Status {
	case entity.IncomeStatusReceived:
		return true
	case entity.IncomeStatusPartial:
		return payload.AmountReceived.GreaterThan(existing.AmountReceived)
	case entity.IncomeStatusOverdue:
		return existing.Status == entity.IncomeStatusPending || existing.Status == entity.IncomeStatusPartial
	default:
		return false
	}
}

// applyExternalStatus brings an entry to the mapped status
// through the engine's own transitions.
func (uc *IngestInvoiceEventUseCase) applyExternalStatus(
	income *entity.IncomeEntry,
	payload *entity.IncomePayload,
) (*entity.IncomeEntry, []valueobject.LedgerEvent, error) {
	receivedDate := uc.clock.Now()
	if payload.ReceivedDate != nil {
		receivedDate = *payload.ReceivedDate
	}

	var result ledger.TransactionResult[*entity.IncomeEntry]
	switch payload.Status {
	case entity.IncomeStatusReceived:
		amount := payload.AmountReceived
		if amount.IsZero() {
			result = uc.engine.VerifyIncome(income, receivedDate, nil, nil)
		} else {
			result = uc.engine.VerifyIncome(income, receivedDate, nil, &amount)
		}
	case entity.IncomeStatusPartial:
		result = uc.engine.VerifyPartialIncome(income, receivedDate, nil, payload.AmountReceived)
	case entity.IncomeStatusOverdue:
		result = uc.engine.MarkIncomeOverdue(income)
	default:
		return income, nil, nil
	}

	if !result.Success {
		return nil, nil, ingestFailed(result.AsError())
	}
	return result.Data, result.Events, nil
}

func ingestFailed(err error) error {
	return domainerror.NewIntegrationError(domainerror.ErrCodeInvoiceIngestFailed, "invoice event rejected by the ledger", err)
}
