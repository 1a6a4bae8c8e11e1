package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// ExpenseFilter defines filter options for reading expense entries.
type ExpenseFilter struct {
	Statuses     []entity.ExpenseStatus
	IncurredFrom *time.Time
	IncurredTo   *time.Time
	PaidFrom     *time.Time
	PaidTo       *time.Time
}

// ExpenseRepository defines the durable store contract for expense entries.
type ExpenseRepository interface {
	// Create inserts a new expense entry.
	Create(ctx context.Context, expense *entity.ExpenseEntry) error

	// FindByID retrieves an expense entry by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ExpenseEntry, error)

	// FindByFilter retrieves entries matching the filter, ordered by incurred date ascending.
	FindByFilter(ctx context.Context, filter ExpenseFilter) ([]*entity.ExpenseEntry, error)

	// Update overwrites an existing expense entry.
	Update(ctx context.Context, expense *entity.ExpenseEntry) error
}
