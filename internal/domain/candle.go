package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedCandle is returned when a raw candle cannot be normalized
var ErrMalformedCandle = errors.New("malformed candle")

// Candle represents one completed OHLC bar for an instrument/timeframe
type Candle struct {
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Time     time.Time
	Complete bool
}

// NewCandle validates price ordering and constructs a Candle.
// Required invariant: low <= min(open,close) <= max(open,close) <= high.
func NewCandle(open, high, low, close float64, ts time.Time, complete bool) (Candle, error) {
	body := open
	if close < body {
		body = close
	}
	if low > body {
		return Candle{}, fmt.Errorf("%w: low %.5f above body low %.5f", ErrMalformedCandle, low, body)
	}
	body = open
	if close > body {
		body = close
	}
	if high < body {
		return Candle{}, fmt.Errorf("%w: high %.5f below body high %.5f", ErrMalformedCandle, high, body)
	}
	return Candle{Open: open, High: high, Low: low, Close: close, Time: ts, Complete: complete}, nil
}

// Bullish reports whether the candle closed above its open
func (c Candle) Bullish() bool {
	return c.Close > c.Open
}

// Bearish reports whether the candle closed below its open
func (c Candle) Bearish() bool {
	return c.Close < c.Open
}

// Window is an ordered sequence of completed candles, oldest to newest.
// Windows are built fresh each scan cycle and never outlive it.
type Window []Candle

// Last returns the n most recent candles, or nil if the window is too short
func (w Window) Last(n int) Window {
	if len(w) < n {
		return nil
	}
	return w[len(w)-n:]
}
