package pattern

import (
	"time"

	"github.com/Jackbryan316/Session-ob/internal/domain"
)

// threeCandleReversal detects a bias flip across exactly three candles: one
// candle against the move followed by two with it (bearish, bullish, bullish
// reads as a bullish reversal). The middle candle's open anchors the entry
// and the final close anchors the target; the stop falls out of the
// configured risk:reward.
type threeCandleReversal struct {
	riskReward float64
}

func (r *threeCandleReversal) Name() string    { return NameThreeCandleReversal }
func (r *threeCandleReversal) MinCandles() int { return 3 }

func (r *threeCandleReversal) Detect(instrument string, w domain.Window) (*domain.Signal, bool) {
	tail := w.Last(3)
	if tail == nil {
		return nil, false
	}
	first, middle, last := tail[0], tail[1], tail[2]

	bull := first.Bearish() && middle.Bullish() && last.Bullish() && last.Close > middle.Open
	bear := first.Bullish() && middle.Bearish() && last.Bearish() && last.Close < middle.Open
	if bull == bear {
		return nil, false
	}

	entry := middle.Open
	target := last.Close
	var stop float64
	direction := domain.Bullish
	if bull {
		stop = entry - (target-entry)/r.riskReward
	} else {
		direction = domain.Bearish
		stop = entry + (entry-target)/r.riskReward
	}
	return &domain.Signal{
		Instrument:  instrument,
		Pattern:     NameThreeCandleReversal,
		Direction:   direction,
		Entry:       entry,
		StopLoss:    stop,
		TakeProfit:  target,
		GeneratedAt: time.Now().UTC(),
	}, true
}
