package scan

import (
	"sync"
	"time"
)

// StatusSnapshot is the read-only view served by the status endpoints
type StatusSnapshot struct {
	Running     bool      `json:"running"`
	LastChecked time.Time `json:"last_checked"`
	LastSignal  string    `json:"last_signal"`
}

// Status is the shared pipeline status record. The scanner is the only
// writer; the HTTP surface reads snapshots concurrently.
type Status struct {
	mu          sync.RWMutex
	running     bool
	lastChecked time.Time
	lastSignal  string
}

// NewStatus creates a status record with no setup recorded yet
func NewStatus() *Status {
	return &Status{lastSignal: "No setup"}
}

// SetRunning marks the scan loop as started or stopped
func (s *Status) SetRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = running
}

// CycleCompleted records the completion instant of a scan cycle
func (s *Status) CycleCompleted(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastChecked = at
}

// SignalRaised records the most recent detected signal description
func (s *Status) SignalRaised(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSignal = description
}

// Snapshot returns a consistent copy for external observation
func (s *Status) Snapshot() StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StatusSnapshot{
		Running:     s.running,
		LastChecked: s.lastChecked,
		LastSignal:  s.lastSignal,
	}
}
