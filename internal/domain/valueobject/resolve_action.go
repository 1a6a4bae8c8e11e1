package valueobject

// ResolveAction selects how a held receivable leaves the hold.
type ResolveAction string

const (
	// ResolveReceived settles the receivable.
	ResolveReceived ResolveAction = "received"
	// ResolveNewDate reschedules the receivable and returns it to normal tracking.
	ResolveNewDate ResolveAction = "new_date"
)

// IsValid reports whether the action is known.
func (a ResolveAction) IsValid() bool {
	return a == ResolveReceived || a == ResolveNewDate
}
