package pattern

import (
	"time"

	"github.com/Jackbryan316/Session-ob/internal/domain"
)

// engulfing detects the two-candle engulfing reversal: the current candle's
// body fully contains the prior candle's body in the opposite direction.
type engulfing struct {
	riskReward float64
}

func (e *engulfing) Name() string    { return NameEngulfing }
func (e *engulfing) MinCandles() int { return 2 }

func (e *engulfing) Detect(instrument string, w domain.Window) (*domain.Signal, bool) {
	tail := w.Last(2)
	if tail == nil {
		return nil, false
	}
	prev, curr := tail[0], tail[1]

	bull := prev.Bearish() && curr.Bullish() && curr.Open < prev.Close && curr.Close > prev.Open
	bear := prev.Bullish() && curr.Bearish() && curr.Open > prev.Close && curr.Close < prev.Open
	if bull == bear {
		// neither, or the ambiguous both-sides case
		return nil, false
	}

	entry := curr.Close
	var stop float64
	direction := domain.Bullish
	if bull {
		stop = curr.Low
	} else {
		direction = domain.Bearish
		stop = curr.High
	}
	risk := entry - stop
	if direction == domain.Bearish {
		risk = stop - entry
	}
	if risk <= 0 {
		return nil, false
	}

	target := entry + risk*e.riskReward
	if direction == domain.Bearish {
		target = entry - risk*e.riskReward
	}
	return &domain.Signal{
		Instrument:  instrument,
		Pattern:     NameEngulfing,
		Direction:   direction,
		Entry:       entry,
		StopLoss:    stop,
		TakeProfit:  target,
		GeneratedAt: time.Now().UTC(),
	}, true
}
