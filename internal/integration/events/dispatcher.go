// Package events delivers ledger events to in-process handlers and, when
// configured, to a message broker.
package events

import (
	"context"
	"log/slog"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// Dispatcher fans a published ledger event out to its handlers, then forwards
// it to the broker publisher if one is set.
type Dispatcher struct {
	handlers []adapter.LedgerEventHandler
	forward  adapter.EventPublisher
}

// NewDispatcher creates a dispatcher. forward may be nil.
func NewDispatcher(forward adapter.EventPublisher, handlers ...adapter.LedgerEventHandler) *Dispatcher {
	return &Dispatcher{
		handlers: handlers,
		forward:  forward,
	}
}

// Publish implements adapter.EventPublisher. Handler failures are logged and do
// not stop delivery to the remaining handlers; only a broker failure is returned.
func (d *Dispatcher) Publish(ctx context.Context, topic string, event any) error {
	if msg, ok := event.(valueobject.LedgerEventMessage); ok {
		for _, h := range d.handlers {
			if err := h.Handle(ctx, msg); err != nil {
				slog.Error("Ledger event handler failed",
					"event", msg.Event,
					"record_id", msg.RecordID,
					"error", err,
				)
			}
		}
	}

	if d.forward == nil {
		return nil
	}
	return d.forward.Publish(ctx, topic, event)
}

var _ adapter.EventPublisher = (*Dispatcher)(nil)
