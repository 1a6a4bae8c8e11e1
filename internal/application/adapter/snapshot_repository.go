package adapter

import (
	"context"
	"time"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// SnapshotRepository persists monthly P&L snapshots. It has no update method;
// snapshots are written once.
type SnapshotRepository interface {
	// Create inserts a snapshot. It fails with ErrMonthAlreadyClosed when the month exists.
	Create(ctx context.Context, snapshot *entity.MonthlyPLSnapshot) error

	// FindByMonth retrieves the snapshot for the month starting at month.
	FindByMonth(ctx context.Context, month time.Time) (*entity.MonthlyPLSnapshot, error)

	// List returns every snapshot, newest month first.
	List(ctx context.Context) ([]*entity.MonthlyPLSnapshot, error)
}

// PayrollRepository reads payroll records.
type PayrollRepository interface {
	// FindByMonth returns the records for a YYYY-MM month reference.
	FindByMonth(ctx context.Context, monthReference string) ([]*entity.PayrollRecord, error)
}
