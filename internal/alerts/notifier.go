// Package alerts formats detected signals and delivers them to the
// notification sink. Delivery is best-effort: one attempt per signal, and a
// failure never propagates past the dispatcher.
package alerts

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jackbryan316/Session-ob/internal/domain"
	"github.com/Jackbryan316/Session-ob/internal/domain/pattern"
)

// Notifier delivers one formatted alert payload
type Notifier interface {
	Notify(ctx context.Context, signal domain.Signal) error
}

// patternLabel maps detector names to the short labels used in alert titles
func patternLabel(name string) string {
	switch name {
	case pattern.NameEngulfing:
		return "Engulfing"
	case pattern.NameLiquiditySweep:
		return "OB"
	case pattern.NameThreeCandleReversal:
		return "3-Candle Reversal"
	default:
		return name
	}
}

// Title renders the alert headline, e.g. "Bullish OB Detected on XAU_USD"
func Title(signal domain.Signal) string {
	return fmt.Sprintf("%s %s Detected on %s", signal.Direction, patternLabel(signal.Pattern), signal.Instrument)
}

// ChartURL returns the TradingView deep link for an instrument
func ChartURL(instrument string) string {
	return "https://www.tradingview.com/chart/?symbol=OANDA:" + strings.ReplaceAll(instrument, "_", "")
}
