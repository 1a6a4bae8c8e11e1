package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_TickerIntervals(t *testing.T) {
	tests := []struct {
		name      string
		sweep     string
		poll      string
		wantSweep time.Duration
		wantPoll  time.Duration
	}{
		{name: "configured", sweep: "15m", poll: "2s", wantSweep: 15 * time.Minute, wantPoll: 2 * time.Second},
		{name: "zero falls back", sweep: "0s", poll: "0", wantSweep: time.Hour, wantPoll: 5 * time.Second},
		{name: "negative falls back", sweep: "-1h", poll: "-5s", wantSweep: time.Hour, wantPoll: 5 * time.Second},
		{name: "unparsable falls back", sweep: "hourly", poll: "often", wantSweep: time.Hour, wantPoll: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LEDGER_SWEEP_INTERVAL", tt.sweep)
			t.Setenv("EMAIL_WORKER_POLL_INTERVAL", tt.poll)

			cfg := Load()

			assert.Equal(t, tt.wantSweep, cfg.Ledger.SweepInterval)
			assert.Equal(t, tt.wantPoll, cfg.Email.PollInterval)
		})
	}
}
