package adapter

import (
	"context"

	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// EventPublisher publishes ledger events to interested parties.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event any) error
}

// LedgerEventHandler reacts to a ledger event delivered in-process.
type LedgerEventHandler interface {
	Handle(ctx context.Context, msg valueobject.LedgerEventMessage) error
}
