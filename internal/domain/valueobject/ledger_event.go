// Package valueobject contains domain value objects for the Ledgerly ledger.
package valueobject

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEvent names a follow-up action requested by a ledger transition.
type LedgerEvent string

const (
	// EventRecalculateLiquidCash signals that derived cash figures are stale.
	EventRecalculateLiquidCash LedgerEvent = "RECALCULATE_LIQUID_CASH"
)

// LedgerEventsTopic is the topic ledger events are published on.
const LedgerEventsTopic = "ledger.events"

// LedgerEventMessage is the envelope published for every emitted event.
type LedgerEventMessage struct {
	Event      LedgerEvent `json:"event"`
	RecordID   uuid.UUID   `json:"record_id"`
	RecordKind string      `json:"record_kind"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Record kinds carried by LedgerEventMessage.
const (
	RecordKindIncome  = "income"
	RecordKindExpense = "expense"
)
