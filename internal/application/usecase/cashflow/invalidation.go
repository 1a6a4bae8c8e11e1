package cashflow

import (
	"context"
	"log/slog"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// CacheInvalidationHandler drops the cached cash position whenever a transition
// reports that liquid cash changed.
type CacheInvalidationHandler struct {
	cache adapter.CashPositionCache
}

// NewCacheInvalidationHandler creates a new CacheInvalidationHandler instance.
func NewCacheInvalidationHandler(cache adapter.CashPositionCache) *CacheInvalidationHandler {
	return &CacheInvalidationHandler{cache: cache}
}

// Handle implements adapter.LedgerEventHandler.
func (h *CacheInvalidationHandler) Handle(ctx context.Context, msg valueobject.LedgerEventMessage) error {
	if msg.Event != valueobject.EventRecalculateLiquidCash {
		return nil
	}
	slog.Debug("Invalidating cash position", "record_id", msg.RecordID, "record_kind", msg.RecordKind)
	return h.cache.Invalidate(ctx)
}

var _ adapter.LedgerEventHandler = (*CacheInvalidationHandler)(nil)
