// Package dedup suppresses repeated alerts for an unchanged signal. One
// fingerprint is kept per instrument and overwritten on every new distinct
// alert; losing the state on restart only risks one duplicate notification.
package dedup

import (
	"context"
	"sync"
)

// Store records the last alerted fingerprint per instrument
type Store interface {
	// ShouldAlert reports whether the fingerprint differs from the last
	// recorded one for the instrument (first sight always alerts)
	ShouldAlert(ctx context.Context, instrument, fingerprint string) bool
	// Record overwrites the instrument's fingerprint after a dispatch attempt
	Record(ctx context.Context, instrument, fingerprint string)
}

// MemoryStore is the in-process Store used when no Redis address is
// configured. Cardinality is bounded by the fixed instrument list.
type MemoryStore struct {
	mu   sync.Mutex
	last map[string]string
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{last: make(map[string]string)}
}

func (s *MemoryStore) ShouldAlert(_ context.Context, instrument, fingerprint string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last[instrument] != fingerprint
}

func (s *MemoryStore) Record(_ context.Context, instrument, fingerprint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[instrument] = fingerprint
}
