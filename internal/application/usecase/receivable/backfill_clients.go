package receivable

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledgerly/backend/internal/application/adapter"
)

// BackfillClientNamesOutput represents the output of a backfill pass.
type BackfillClientNamesOutput struct {
	Scanned int
	Updated int
}

// BackfillClientNamesUseCase fills missing client names on legacy entries from
// descriptions written as "Client: project".
type BackfillClientNamesUseCase struct {
	incomeRepo adapter.IncomeRepository
	clock      adapter.Clock
}

// NewBackfillClientNamesUseCase creates a new BackfillClientNamesUseCase instance.
func NewBackfillClientNamesUseCase(incomeRepo adapter.IncomeRepository, clock adapter.Clock) *BackfillClientNamesUseCase {
	return &BackfillClientNamesUseCase{
		incomeRepo: incomeRepo,
		clock:      clock,
	}
}

// Execute runs the pass once over every entry.
func (uc *BackfillClientNamesUseCase) Execute(ctx context.Context) (*BackfillClientNamesOutput, error) {
	entries, err := uc.incomeRepo.FindByFilter(ctx, adapter.IncomeFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load income entries: %w", err)
	}

	output := &BackfillClientNamesOutput{Scanned: len(entries)}
	for _, e := range entries {
		if strings.TrimSpace(e.ClientName) != "" {
			continue
		}
		name, ok := ClientFromDescription(e.Description)
		if !ok {
			continue
		}
		e.ClientName = name
		e.UpdatedAt = uc.clock.Now().UTC()
		if err := uc.incomeRepo.Update(ctx, e); err != nil {
			return nil, fmt.Errorf("failed to backfill income %s: %w", e.ID, err)
		}
		output.Updated++
	}

	slog.Info("Client name backfill completed", "scanned", output.Scanned, "updated", output.Updated)
	return output, nil
}

// ClientFromDescription extracts "Acme" from "Acme: Website redesign".
func ClientFromDescription(description string) (string, bool) {
	prefix, _, found := strings.Cut(description, ":")
	if !found {
		return "", false
	}
	name := strings.TrimSpace(prefix)
	return name, name != ""
}

