package pattern

import (
	"time"

	"github.com/Jackbryan316/Session-ob/internal/domain"
)

// sweepMinCandles is the smallest lookback that still leaves an earlier
// sub-window to establish the liquidity extreme
const sweepMinCandles = 10

// liquiditySweep detects a stop-hunt beyond a recent extreme followed by a
// rejection close back through the prior candle: the most recent candle
// undercuts the lookback low (or exceeds the lookback high) and closes past
// the previous candle's opposite extreme.
type liquiditySweep struct {
	riskReward float64
	lookback   int
	buffer     float64
}

func (s *liquiditySweep) Name() string    { return NameLiquiditySweep }
func (s *liquiditySweep) MinCandles() int { return s.lookback }

func (s *liquiditySweep) Detect(instrument string, w domain.Window) (*domain.Signal, bool) {
	tail := w.Last(s.lookback)
	if tail == nil {
		return nil, false
	}

	// Extremes over the earlier sub-window: everything but the last 2 candles
	earlier := tail[:len(tail)-2]
	maxHigh := earlier[0].High
	minLow := earlier[0].Low
	for _, c := range earlier[1:] {
		if c.High > maxHigh {
			maxHigh = c.High
		}
		if c.Low < minLow {
			minLow = c.Low
		}
	}

	prev := tail[len(tail)-2]
	recent := tail[len(tail)-1]

	bull := recent.Low < minLow && recent.Close > prev.High
	bear := recent.High > maxHigh && recent.Close < prev.Low
	if bull == bear {
		return nil, false
	}

	entry := recent.Close
	var stop, target float64
	direction := domain.Bullish
	if bull {
		stop = recent.Low - s.buffer
		risk := entry - stop
		if risk <= 0 {
			return nil, false
		}
		target = entry + risk*s.riskReward
	} else {
		direction = domain.Bearish
		stop = recent.High + s.buffer
		risk := stop - entry
		if risk <= 0 {
			return nil, false
		}
		target = entry - risk*s.riskReward
	}
	return &domain.Signal{
		Instrument:  instrument,
		Pattern:     NameLiquiditySweep,
		Direction:   direction,
		Entry:       entry,
		StopLoss:    stop,
		TakeProfit:  target,
		GeneratedAt: time.Now().UTC(),
	}, true
}
