package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// PublishEvents publishes the events of a persisted transition. Publishing happens
// after the store write, so a failure here is logged and does not undo the transition.
func PublishEvents(
	ctx context.Context,
	publisher adapter.EventPublisher,
	events []valueobject.LedgerEvent,
	recordID uuid.UUID,
	recordKind string,
	at time.Time,
) {
	for _, event := range events {
		msg := valueobject.LedgerEventMessage{
			Event:      event,
			RecordID:   recordID,
			RecordKind: recordKind,
			OccurredAt: at,
		}
		if err := publisher.Publish(ctx, valueobject.LedgerEventsTopic, msg); err != nil {
			slog.Error("Failed to publish ledger event",
				"event", event,
				"record_id", recordID,
				"error", err,
			)
		}
	}
}
