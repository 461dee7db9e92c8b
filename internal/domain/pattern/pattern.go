// Package pattern implements the candle pattern detectors behind a single
// polymorphic contract. Detectors are pure: no I/O, no shared state, and a
// window that is too short or ambiguous yields "no signal", never an error.
package pattern

import (
	"fmt"
	"sort"

	"github.com/Jackbryan316/Session-ob/internal/domain"
)

// Detector evaluates the most recent candles of one instrument
type Detector interface {
	// Name identifies the variant in config, logs and fingerprints
	Name() string
	// MinCandles is the smallest window the detector will evaluate
	MinCandles() int
	// Detect returns a signal when the pattern fires on the window tail.
	// Returns (nil, false) for short windows, absent patterns, and the
	// defensive case where bullish and bearish conditions fire together.
	Detect(instrument string, w domain.Window) (*domain.Signal, bool)
}

// Config carries the per-variant knobs. Each variant keeps its own
// conventions rather than sharing one unified threshold set.
type Config struct {
	RiskReward    float64 // take-profit distance as a multiple of stop distance
	SweepLookback int     // candles considered by the liquidity sweep variant
	SweepBuffer   float64 // price buffer past the sweep extreme for the stop
}

// Variant names accepted by New
const (
	NameEngulfing           = "engulfing"
	NameLiquiditySweep      = "liquidity_sweep"
	NameThreeCandleReversal = "three_candle_reversal"
)

// New constructs the named detector variant
func New(name string, cfg Config) (Detector, error) {
	if cfg.RiskReward <= 0 {
		cfg.RiskReward = 2
	}
	switch name {
	case NameEngulfing:
		return &engulfing{riskReward: cfg.RiskReward}, nil
	case NameLiquiditySweep:
		lookback := cfg.SweepLookback
		if lookback < sweepMinCandles {
			lookback = sweepMinCandles
		}
		return &liquiditySweep{riskReward: cfg.RiskReward, lookback: lookback, buffer: cfg.SweepBuffer}, nil
	case NameThreeCandleReversal:
		return &threeCandleReversal{riskReward: cfg.RiskReward}, nil
	default:
		return nil, fmt.Errorf("unknown pattern detector %q (known: %v)", name, Names())
	}
}

// Names lists the registered variants in stable order
func Names() []string {
	names := []string{NameEngulfing, NameLiquiditySweep, NameThreeCandleReversal}
	sort.Strings(names)
	return names
}
