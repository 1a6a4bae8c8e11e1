// Package receivable manages the lifecycle of unsettled income: overdue
// detection, hold, snooze, resolution and settlement.
package receivable

import (
	"time"

	"github.com/ledgerly/backend/internal/domain/entity"
	"github.com/ledgerly/backend/internal/domain/valueobject"
)

// DefaultGracePeriodDays is how long a receivable may lapse before it is overdue.
const DefaultGracePeriodDays = 7

// IsOverdue reports whether the entry's effective date lies strictly before
// today minus the grace period. An entry exactly graceDays old is not overdue.
func IsOverdue(entry *entity.IncomeEntry, today time.Time, graceDays int) bool {
	cutoff := valueobject.StartOfDay(today).AddDate(0, 0, -graceDays)
	return valueobject.StartOfDay(entry.EffectiveDate()).Before(cutoff)
}

// IsSweepCandidate reports whether the overdue sweep may consider the entry.
// Held, received and archived entries are never swept.
func IsSweepCandidate(entry *entity.IncomeEntry) bool {
	if entry.IsOnHold {
		return false
	}
	switch entry.Status {
	case entity.IncomeStatusReceived, entity.IncomeStatusArchived:
		return false
	}
	return true
}

// DaysOverdue returns how many days past its effective date the entry is.
func DaysOverdue(entry *entity.IncomeEntry, today time.Time) int {
	days := valueobject.DaysBetween(entry.EffectiveDate(), today)
	if days < 0 {
		return 0
	}
	return days
}
