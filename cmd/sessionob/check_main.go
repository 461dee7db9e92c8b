package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jackbryan316/Session-ob/internal/config"
	"github.com/Jackbryan316/Session-ob/internal/domain/pattern"
	"github.com/Jackbryan316/Session-ob/internal/provider/oanda"
)

// runCheck performs a single detection pass and prints the outcome per
// instrument. It never dispatches alerts or touches dedup state, so it is
// safe to run next to a live instance.
func runCheck(cmd *cobra.Command, _ []string) error {
	setupLogLevel(cmd)
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	detector, err := pattern.New(cfg.Pattern.Active, cfg.PatternSettings())
	if err != nil {
		return err
	}

	provider := oanda.NewClient(oanda.Config{
		BaseURL:     cfg.OandaBaseURL,
		APIKey:      cfg.OandaAPIKey,
		Granularity: cfg.Timeframe,
		CandleCount: cfg.CandleCount,
	})

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	fmt.Printf("Pattern: %s  Timeframe: %s\n", detector.Name(), cfg.Timeframe)
	for _, instrument := range cfg.Instruments {
		window, err := provider.Candles(ctx, instrument)
		if err != nil {
			fmt.Printf("%-10s fetch failed: %v\n", instrument, err)
			continue
		}
		signal, ok := detector.Detect(instrument, window)
		if !ok {
			fmt.Printf("%-10s no setup (%d candles)\n", instrument, len(window))
			continue
		}
		fmt.Printf("%-10s %s\n", instrument, signal.Describe())
	}
	return nil
}
