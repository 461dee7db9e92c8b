// Package session decides whether the FX market is open at a given instant.
package session

import "time"

// DefaultReopenHour is the local hour at which trading resumes on Sunday
const DefaultReopenHour = 22

// IsOpen reports whether scanning should occur at the given UTC instant.
// Local time is UTC shifted by offsetHours. The market is closed for all of
// Saturday and for Sunday before reopenHour; every other instant is open.
// Pure function of wall-clock time: callers must evaluate it fresh per tick.
func IsOpen(nowUTC time.Time, offsetHours, reopenHour int) bool {
	local := nowUTC.UTC().Add(time.Duration(offsetHours) * time.Hour)
	switch local.Weekday() {
	case time.Saturday:
		return false
	case time.Sunday:
		return local.Hour() >= reopenHour
	default:
		return true
	}
}
