package adapter

import (
	"context"
	"time"

	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// CashPositionCache stores the last computed cash position until it is invalidated.
type CashPositionCache interface {
	// Get returns the cached position, or nil when nothing is cached.
	Get(ctx context.Context) (*valueobject.CashPosition, error)

	// Set stores a position for at most ttl.
	Set(ctx context.Context, position *valueobject.CashPosition, ttl time.Duration) error

	// Invalidate drops the cached position.
	Invalidate(ctx context.Context) error
}
