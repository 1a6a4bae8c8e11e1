// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// IncomeFilter defines filter options for reading income entries.
type IncomeFilter struct {
	Statuses           []entity.IncomeStatus
	ExcludeStatuses    []entity.IncomeStatus
	DateFrom           *time.Time // Inclusive bound on the original date
	DateTo             *time.Time // Inclusive bound on the original date
	ReceivedFrom       *time.Time
	ReceivedTo         *time.Time
	OnHold             *bool
	RetainerInstanceID *uuid.UUID
	SourceRefID        *string
}

// IncomeRepository defines the durable store contract for income entries.
type IncomeRepository interface {
	// Create inserts a new income entry.
	Create(ctx context.Context, income *entity.IncomeEntry) error

	// FindByID retrieves an income entry by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.IncomeEntry, error)

	// FindBySourceRef retrieves the entry ingested from an external reference.
	FindBySourceRef(ctx context.Context, sourceRefID string) (*entity.IncomeEntry, error)

	// FindByFilter retrieves entries matching the filter, ordered by date ascending.
	FindByFilter(ctx context.Context, filter IncomeFilter) ([]*entity.IncomeEntry, error)

	// Update overwrites an existing income entry. It fails with ErrAlreadySettled
	// when the stored entry is archived and the new state is not.
	Update(ctx context.Context, income *entity.IncomeEntry) error

	// ApplySettlement inserts the realized record and archives the original in one
	// transaction. It fails with ErrAlreadySettled when the original was archived
	// or already superseded by a concurrent settlement.
	ApplySettlement(ctx context.Context, original *entity.IncomeEntry, realized *entity.IncomeEntry) error
}
