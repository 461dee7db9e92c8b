package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCandle_Valid(t *testing.T) {
	ts := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)
	c, err := NewCandle(1.1000, 1.1050, 1.0950, 1.1020, ts, true)
	require.NoError(t, err)
	assert.Equal(t, 1.1000, c.Open)
	assert.Equal(t, 1.1050, c.High)
	assert.True(t, c.Bullish())
	assert.False(t, c.Bearish())
}

func TestNewCandle_RejectsBrokenOrdering(t *testing.T) {
	ts := time.Now()

	// Low above the body
	_, err := NewCandle(1.1000, 1.1050, 1.1010, 1.1020, ts, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedCandle))

	// High below the body
	_, err = NewCandle(1.1000, 1.0990, 1.0950, 1.0980, ts, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedCandle))
}

func TestNewCandle_DojiIsValid(t *testing.T) {
	c, err := NewCandle(1.1000, 1.1000, 1.1000, 1.1000, time.Now(), true)
	require.NoError(t, err)
	assert.False(t, c.Bullish())
	assert.False(t, c.Bearish())
}

func TestWindowLast(t *testing.T) {
	w := Window{{Close: 1}, {Close: 2}, {Close: 3}}

	tail := w.Last(2)
	require.Len(t, tail, 2)
	assert.Equal(t, 2.0, tail[0].Close)
	assert.Equal(t, 3.0, tail[1].Close)

	assert.Nil(t, w.Last(4), "short window must return nil")
	require.Len(t, w.Last(3), 3)
}

func TestSignalFingerprint(t *testing.T) {
	sig := Signal{Instrument: "EUR_USD", Pattern: "engulfing", Direction: Bullish, Entry: 1.10543}
	same := Signal{Instrument: "EUR_USD", Pattern: "engulfing", Direction: Bullish, Entry: 1.10543}
	assert.Equal(t, sig.Fingerprint(), same.Fingerprint())

	moved := sig
	moved.Entry = 1.10544
	assert.NotEqual(t, sig.Fingerprint(), moved.Fingerprint())

	flipped := sig
	flipped.Direction = Bearish
	assert.NotEqual(t, sig.Fingerprint(), flipped.Fingerprint())
}
