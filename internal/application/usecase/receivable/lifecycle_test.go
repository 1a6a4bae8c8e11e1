package receivable

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/entity"
)

func TestIsOverdue(t *testing.T) {
	today := time.Date(2026, 3, 20, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     time.Time
		snoozed  *time.Time
		expected bool
	}{
		{name: "exactly seven days old is not overdue", date: today.AddDate(0, 0, -7), expected: false},
		{name: "eight days old is overdue", date: today.AddDate(0, 0, -8), expected: true},
		{name: "due today is not overdue", date: today, expected: false},
		{name: "future date is not overdue", date: today.AddDate(0, 0, 3), expected: false},
		{
			name:     "snoozed date wins over a lapsed original date",
			date:     today.AddDate(0, 0, -40),
			snoozed:  timePtr(today.AddDate(0, 0, 2)),
			expected: false,
		},
		{
			name:     "lapsed snoozed date is overdue",
			date:     today.AddDate(0, 0, -3),
			snoozed:  timePtr(today.AddDate(0, 0, -9)),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &entity.IncomeEntry{
				AmountExpected: decimal.NewFromInt(100),
				Status:         entity.IncomeStatusPending,
				Date:           tt.date,
				ExpectedDate:   tt.snoozed,
			}
			if got := IsOverdue(e, today, DefaultGracePeriodDays); got != tt.expected {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsSweepCandidate(t *testing.T) {
	tests := []struct {
		name     string
		status   entity.IncomeStatus
		held     bool
		expected bool
	}{
		{"pending", entity.IncomeStatusPending, false, true},
		{"partial", entity.IncomeStatusPartial, false, true},
		{"held pending", entity.IncomeStatusPending, true, false},
		{"received", entity.IncomeStatusReceived, false, false},
		{"archived", entity.IncomeStatusArchived, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &entity.IncomeEntry{Status: tt.status, IsOnHold: tt.held}
			if got := IsSweepCandidate(e); got != tt.expected {
				t.Errorf("IsSweepCandidate() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClientFromDescription(t *testing.T) {
	tests := []struct {
		description string
		want        string
		ok          bool
	}{
		{"Acme: Website redesign", "Acme", true},
		{"  Globex Corp :retainer March", "Globex Corp", true},
		{"Consulting hours", "", false},
		{": orphan", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, ok := ClientFromDescription(tt.description)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ClientFromDescription(%q) = (%q, %v), want (%q, %v)", tt.description, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
