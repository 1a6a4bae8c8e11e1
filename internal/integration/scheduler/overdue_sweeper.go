// Package scheduler runs periodic ledger maintenance in the background.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/ledgerly/backend/internal/application/usecase/receivable"
)

// Sweeper runs one sweep pass.
type Sweeper interface {
	Execute(ctx context.Context) (*receivable.SweepOverdueOutput, error)
}

// DefaultSweepInterval is used when no positive interval is configured.
const DefaultSweepInterval = time.Hour

// OverdueSweeper flags overdue receivables on a fixed interval.
type OverdueSweeper struct {
	sweeper  Sweeper
	interval time.Duration
}

// NewOverdueSweeper creates a new sweeper that runs every interval.
func NewOverdueSweeper(sweeper Sweeper, interval time.Duration) *OverdueSweeper {
	if interval <= 0 {
		slog.Warn("Invalid sweep interval, using default", "interval", interval, "default", DefaultSweepInterval)
		interval = DefaultSweepInterval
	}
	return &OverdueSweeper{
		sweeper:  sweeper,
		interval: interval,
	}
}

// Start sweeps once immediately and then on every tick. It blocks until the
// context is cancelled.
func (s *OverdueSweeper) Start(ctx context.Context) {
	slog.Info("Overdue sweeper started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Overdue sweeper shutting down")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *OverdueSweeper) runOnce(ctx context.Context) {
	output, err := s.sweeper.Execute(ctx)
	if err != nil {
		// The next tick retries.
		slog.Error("Overdue sweep failed", "error", err)
		return
	}
	if len(output.Flagged) > 0 {
		slog.Info("Overdue sweep flagged receivables", "flagged", len(output.Flagged))
	}
}
