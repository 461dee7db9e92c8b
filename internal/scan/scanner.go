// Package scan drives the periodic detection pipeline: market-hours gating,
// candle fetching, pattern detection, dedup and alert dispatch.
package scan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Jackbryan316/Session-ob/internal/alerts"
	"github.com/Jackbryan316/Session-ob/internal/dedup"
	"github.com/Jackbryan316/Session-ob/internal/domain"
	"github.com/Jackbryan316/Session-ob/internal/domain/pattern"
	"github.com/Jackbryan316/Session-ob/internal/domain/session"
	"github.com/Jackbryan316/Session-ob/internal/journal"
	"github.com/Jackbryan316/Session-ob/internal/metrics"
)

// MarketData supplies candle windows per instrument
type MarketData interface {
	Candles(ctx context.Context, instrument string) (domain.Window, error)
}

// Config holds the scan loop settings
type Config struct {
	Instruments         []string
	Interval            time.Duration
	TimezoneOffsetHours int
	SundayReopenHour    int
}

// Deps are the collaborators the scanner orchestrates
type Deps struct {
	Provider MarketData
	Detector pattern.Detector
	Dedup    dedup.Store
	Notifier alerts.Notifier
	Journal  *journal.Writer
	Metrics  *metrics.Registry
	Status   *Status
}

// InstrumentResult records one instrument's outcome within a cycle
type InstrumentResult struct {
	Instrument string
	Signal     *domain.Signal
	Dispatched bool
	Suppressed bool
	Err        error
}

// CycleResult summarizes one pass over all instruments
type CycleResult struct {
	ID      string
	Started time.Time
	Results []InstrumentResult
}

// Scanner runs the scan loop. One long-lived instance per process; the loop
// is not re-entrant and owns the dedup store exclusively.
type Scanner struct {
	cfg  Config
	deps Deps

	// injectable for deterministic tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a scanner with the real clock
func New(cfg Config, deps Deps) *Scanner {
	if cfg.Interval <= 0 {
		cfg.Interval = 300 * time.Second
	}
	if cfg.SundayReopenHour == 0 {
		cfg.SundayReopenHour = session.DefaultReopenHour
	}
	return &Scanner{
		cfg:   cfg,
		deps:  deps,
		now:   time.Now,
		sleep: sleepContext,
	}
}

// Run executes the loop until the context is cancelled. Per-cycle errors are
// logged and absorbed; only shutdown ends the loop.
func (s *Scanner) Run(ctx context.Context) error {
	s.deps.Status.SetRunning(true)
	defer s.deps.Status.SetRunning(false)

	log.Info().Strs("instruments", s.cfg.Instruments).
		Dur("interval", s.cfg.Interval).
		Str("pattern", s.deps.Detector.Name()).
		Msg("scan loop started")
	s.deps.Journal.Append("scan loop started (pattern=%s)", s.deps.Detector.Name())

	for {
		if ctx.Err() != nil {
			return nil
		}

		now := s.now().UTC()
		if !session.IsOpen(now, s.cfg.TimezoneOffsetHours, s.cfg.SundayReopenHour) {
			log.Debug().Time("now", now).Msg("market closed, skipping scan")
			s.deps.Metrics.MarketClosedSkips.Inc()
			if err := s.sleep(ctx, s.cfg.Interval); err != nil {
				return nil
			}
			continue
		}

		cycle := s.runCycle(ctx)
		s.deps.Status.CycleCompleted(s.now().UTC())
		for _, res := range cycle.Results {
			if res.Signal != nil {
				s.deps.Status.SignalRaised(res.Signal.Describe())
			}
		}

		if err := s.sleep(ctx, s.cfg.Interval); err != nil {
			return nil
		}
	}
}

// runCycle scans every instrument once, in configured order. A failure on
// one instrument never aborts the rest of the cycle.
func (s *Scanner) runCycle(ctx context.Context) CycleResult {
	cycle := CycleResult{
		ID:      uuid.NewString()[:8],
		Started: s.now().UTC(),
		Results: make([]InstrumentResult, 0, len(s.cfg.Instruments)),
	}
	logger := log.With().Str("cycle", cycle.ID).Logger()
	logger.Info().Msg("scanning")

	for _, instrument := range s.cfg.Instruments {
		if ctx.Err() != nil {
			break
		}
		cycle.Results = append(cycle.Results, s.scanInstrument(ctx, cycle.ID, instrument))
	}

	s.deps.Metrics.ScanCycles.Inc()
	s.deps.Metrics.CycleDuration.Observe(s.now().UTC().Sub(cycle.Started).Seconds())
	s.deps.Metrics.LastScanUnix.Set(float64(s.now().UTC().Unix()))
	return cycle
}

func (s *Scanner) scanInstrument(ctx context.Context, cycleID, instrument string) InstrumentResult {
	result := InstrumentResult{Instrument: instrument}
	logger := log.With().Str("cycle", cycleID).Str("instrument", instrument).Logger()

	window, err := s.deps.Provider.Candles(ctx, instrument)
	if err != nil {
		logger.Error().Err(err).Msg("candle fetch failed")
		s.deps.Metrics.FetchErrors.WithLabelValues(instrument).Inc()
		s.deps.Journal.Append("fetch failed for %s: %v", instrument, err)
		result.Err = err
		return result
	}

	signal, ok := s.deps.Detector.Detect(instrument, window)
	if !ok {
		logger.Debug().Int("candles", len(window)).Msg("no setup")
		return result
	}
	result.Signal = signal
	s.deps.Metrics.SignalsDetected.WithLabelValues(signal.Pattern, signal.Direction.String()).Inc()

	fingerprint := signal.Fingerprint()
	if !s.deps.Dedup.ShouldAlert(ctx, instrument, fingerprint) {
		logger.Info().Str("fingerprint", fingerprint).Msg("duplicate alert skipped")
		s.deps.Metrics.AlertsSuppressed.Inc()
		result.Suppressed = true
		return result
	}

	// At-most-one-attempt delivery: the fingerprint is recorded even when
	// the webhook fails, so an unchanged signal is not retried next cycle.
	if err := s.deps.Notifier.Notify(ctx, *signal); err != nil {
		logger.Error().Err(err).Msg("alert delivery failed")
		s.deps.Metrics.AlertsFailed.Inc()
		s.deps.Journal.Append("delivery failed for %s: %v", instrument, err)
	} else {
		logger.Info().Str("signal", signal.Describe()).Msg("alert sent")
		s.deps.Metrics.AlertsSent.Inc()
		s.deps.Journal.Append("alert sent: %s", signal.Describe())
		result.Dispatched = true
	}
	s.deps.Dedup.Record(ctx, instrument, fingerprint)
	return result
}

// sleepContext waits for d or until the context is cancelled
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
