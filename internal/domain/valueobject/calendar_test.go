package valueobject

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			name: "same day different hours",
			a:    time.Date(2026, 5, 1, 23, 0, 0, 0, time.UTC),
			b:    time.Date(2026, 5, 1, 1, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "one week forward",
			a:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2026, 5, 8, 18, 0, 0, 0, time.UTC),
			want: 7,
		},
		{
			name: "backwards across a month",
			a:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC),
			want: -3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStartOfMonth(t *testing.T) {
	got := StartOfMonth(time.Date(2026, 7, 19, 14, 30, 0, 0, time.UTC))
	want := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfMonth() = %s, want %s", got, want)
	}
}
