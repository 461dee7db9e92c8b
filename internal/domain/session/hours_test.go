package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOpen_WeekendPolicy(t *testing.T) {
	// 2025-03-08 is a Saturday
	saturday := func(hour int) time.Time {
		return time.Date(2025, 3, 8, hour, 0, 0, 0, time.UTC)
	}
	sunday := func(hour int) time.Time {
		return time.Date(2025, 3, 9, hour, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name   string
		now    time.Time
		offset int
		reopen int
		open   bool
	}{
		{"saturday midnight closed", saturday(0), 0, 22, false},
		{"saturday noon closed", saturday(12), 0, 22, false},
		{"saturday last hour closed", saturday(23), 0, 22, false},
		{"sunday before reopen closed", sunday(21), 0, 22, false},
		{"sunday at reopen open", sunday(22), 0, 22, true},
		{"sunday after reopen open", sunday(23), 0, 22, true},
		{"monday midnight open", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 0, 22, true},
		{"friday open", time.Date(2025, 3, 7, 15, 0, 0, 0, time.UTC), 0, 22, true},
		{"custom reopen hour", sunday(20), 0, 20, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.open, IsOpen(tt.now, tt.offset, tt.reopen))
		})
	}
}

func TestIsOpen_TimezoneOffsetShiftsTheWeekend(t *testing.T) {
	// Friday 23:00 UTC is already Saturday 01:00 at +2
	fridayLate := time.Date(2025, 3, 7, 23, 0, 0, 0, time.UTC)
	assert.True(t, IsOpen(fridayLate, 0, 22))
	assert.False(t, IsOpen(fridayLate, 2, 22))

	// Saturday 23:00 UTC at -2 is still Saturday local; at +23 it is
	// Sunday 22:00 local and therefore open again
	saturdayLate := time.Date(2025, 3, 8, 23, 0, 0, 0, time.UTC)
	assert.False(t, IsOpen(saturdayLate, -2, 22))
	assert.True(t, IsOpen(saturdayLate, 23, 22))
}
