package domain

import (
	"fmt"
	"time"
)

// Direction indicates which side a detected setup favors
type Direction int

const (
	Bullish Direction = iota
	Bearish
)

func (d Direction) String() string {
	switch d {
	case Bullish:
		return "Bullish"
	case Bearish:
		return "Bearish"
	default:
		return "unknown"
	}
}

// Signal represents a detected price-action setup on one instrument.
// For Bullish signals stopLoss < entry < takeProfit holds; Bearish is the mirror.
type Signal struct {
	Instrument  string
	Pattern     string
	Direction   Direction
	Entry       float64
	StopLoss    float64
	TakeProfit  float64
	GeneratedAt time.Time
}

// Fingerprint returns the identity used for alert deduplication.
// Any change in pattern, direction or entry price is a new alertable event.
func (s Signal) Fingerprint() string {
	return fmt.Sprintf("%s|%s|%.5f", s.Pattern, s.Direction, s.Entry)
}

// Describe renders a short human-readable summary for status surfaces
func (s Signal) Describe() string {
	return fmt.Sprintf("%s %s on %s @ %.5f (SL %.5f / TP %.5f)",
		s.Direction, s.Pattern, s.Instrument, s.Entry, s.StopLoss, s.TakeProfit)
}
