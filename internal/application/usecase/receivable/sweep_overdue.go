package receivable

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

// SweepOverdueOutput represents the output of an overdue sweep.
type SweepOverdueOutput struct {
	Scanned int
	Flagged []*entity.IncomeEntry
}

// SweepOverdueUseCase flags lapsed receivables as OVERDUE.
type SweepOverdueUseCase struct {
	engine       *ledger.Engine
	incomeRepo   adapter.IncomeRepository
	publisher    adapter.EventPublisher
	emailService adapter.EmailService
	clock        adapter.Clock
	graceDays    int
}

// NewSweepOverdueUseCase creates a new SweepOverdueUseCase instance.
// emailService may be nil, in which case no digest is queued.
func NewSweepOverdueUseCase(
	engine *ledger.Engine,
	incomeRepo adapter.IncomeRepository,
	publisher adapter.EventPublisher,
	emailService adapter.EmailService,
	clock adapter.Clock,
	graceDays int,
) *SweepOverdueUseCase {
	return &SweepOverdueUseCase{
		engine:       engine,
		incomeRepo:   incomeRepo,
		publisher:    publisher,
		emailService: emailService,
		clock:        clock,
		graceDays:    graceDays,
	}
}

// Execute runs one sweep.
func (uc *SweepOverdueUseCase) Execute(ctx context.Context) (*SweepOverdueOutput, error) {
	today := uc.clock.Now()

	notHeld := false
	candidates, err := uc.incomeRepo.FindByFilter(ctx, adapter.IncomeFilter{
		Statuses: []entity.IncomeStatus{entity.IncomeStatusPending, entity.IncomeStatusPartial},
		OnHold:   &notHeld,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load sweep candidates: %w", err)
	}

	output := &SweepOverdueOutput{
		Scanned: len(candidates),
		Flagged: make([]*entity.IncomeEntry, 0),
	}
	for _, entry := range candidates {
		if !IsSweepCandidate(entry) || !IsOverdue(entry, today, uc.graceDays) {
			continue
		}

		result := uc.engine.MarkIncomeOverdue(entry)
		if !result.Success {
			slog.Warn("Skipping receivable in overdue sweep",
				"income_id", entry.ID,
				"error", result.Error,
			)
			continue
		}
		if err := uc.incomeRepo.Update(ctx, result.Data); err != nil {
			// A settlement that landed after the candidates were read wins.
			if errors.Is(err, domainerror.ErrAlreadySettled) {
				slog.Warn("Receivable settled during overdue sweep", "income_id", entry.ID)
				continue
			}
			return nil, fmt.Errorf("failed to flag income %s as overdue: %w", entry.ID, err)
		}
		ledger.PublishEvents(ctx, uc.publisher, result.Events, entry.ID, valueobject.RecordKindIncome, today)
		output.Flagged = append(output.Flagged, result.Data)
	}

	slog.Info("Overdue sweep completed",
		"scanned", output.Scanned,
		"flagged", len(output.Flagged),
	)

	if len(output.Flagged) > 0 && uc.emailService != nil {
		if err := uc.emailService.QueueOverdueDigest(ctx, digestInput(output.Flagged, today)); err != nil {
			slog.Error("Failed to queue overdue digest", "error", err)
		}
	}

	return output, nil
}
