package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jackbryan316/Session-ob/internal/domain"
)

func TestThreeCandleReversal_Bullish(t *testing.T) {
	det, err := New(NameThreeCandleReversal, Config{RiskReward: 2})
	require.NoError(t, err)

	w := domain.Window{
		candle(1.1000, 1.1010, 1.0880, 1.0900), // bearish
		candle(1.0890, 1.0960, 1.0880, 1.0950), // bullish
		candle(1.0950, 1.1060, 1.0940, 1.1050), // bullish continuation
	}
	sig, ok := det.Detect("EUR_USD", w)
	require.True(t, ok)
	assert.Equal(t, domain.Bullish, sig.Direction)
	assert.Equal(t, 1.0890, sig.Entry, "entry anchors on the middle candle's open")
	assert.Equal(t, 1.1050, sig.TakeProfit, "target anchors on the final close")
	assert.InDelta(t, 1.0810, sig.StopLoss, 1e-9, "stop derives from the risk:reward ratio")
	assert.Less(t, sig.StopLoss, sig.Entry)
	assert.Less(t, sig.Entry, sig.TakeProfit)
}

func TestThreeCandleReversal_Bearish(t *testing.T) {
	det, err := New(NameThreeCandleReversal, Config{RiskReward: 2})
	require.NoError(t, err)

	w := domain.Window{
		candle(1.0900, 1.1020, 1.0890, 1.1000), // bullish
		candle(1.1010, 1.1020, 1.0940, 1.0950), // bearish
		candle(1.0950, 1.0960, 1.0840, 1.0850), // bearish continuation
	}
	sig, ok := det.Detect("GBP_USD", w)
	require.True(t, ok)
	assert.Equal(t, domain.Bearish, sig.Direction)
	assert.Equal(t, 1.1010, sig.Entry)
	assert.Equal(t, 1.0850, sig.TakeProfit)
	assert.InDelta(t, 1.1090, sig.StopLoss, 1e-9)
	assert.Greater(t, sig.StopLoss, sig.Entry)
	assert.Greater(t, sig.Entry, sig.TakeProfit)
}

func TestThreeCandleReversal_NoBiasFlip(t *testing.T) {
	det, err := New(NameThreeCandleReversal, Config{})
	require.NoError(t, err)

	// Three bullish candles: trend, not reversal
	w := domain.Window{
		candle(1.1000, 1.1020, 1.0990, 1.1010),
		candle(1.1010, 1.1030, 1.1000, 1.1020),
		candle(1.1020, 1.1040, 1.1010, 1.1030),
	}
	sig, ok := det.Detect("EUR_USD", w)
	assert.False(t, ok)
	assert.Nil(t, sig)
}

func TestThreeCandleReversal_RequiresConfirmedClose(t *testing.T) {
	det, err := New(NameThreeCandleReversal, Config{})
	require.NoError(t, err)

	// Final close gaps back under the middle open: the target would sit
	// below the entry, so no actionable setup
	w := domain.Window{
		candle(1.1000, 1.1010, 1.0880, 1.0900),
		candle(1.0990, 1.1000, 1.0950, 1.0995),
		candle(1.0900, 1.0920, 1.0890, 1.0910),
	}
	sig, ok := det.Detect("EUR_USD", w)
	assert.False(t, ok)
	assert.Nil(t, sig)
}

func TestThreeCandleReversal_ShortWindow(t *testing.T) {
	det, err := New(NameThreeCandleReversal, Config{})
	require.NoError(t, err)

	sig, ok := det.Detect("EUR_USD", domain.Window{candle(1, 2, 0.5, 1.5), candle(1.5, 2, 1, 1.8)})
	assert.False(t, ok)
	assert.Nil(t, sig)
}

func TestNew_UnknownVariant(t *testing.T) {
	_, err := New("macd_cross", Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown pattern detector")
}
