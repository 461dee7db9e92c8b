package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	appName = "sessionob"
	version = "v1.0.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	// Human-friendly console output on a terminal, JSON when piped
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Session order-block alert bot",
		Version: version,
		Long: `Session OB scans OANDA candles on a fixed interval, runs the configured
price-action pattern detector over each instrument and pushes de-duplicated
alerts to a Discord webhook. A read-only dashboard exposes pipeline status.`,
	}
	rootCmd.PersistentFlags().String("config", "config/config.yaml", "Path to YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scan loop and status server",
		Long:  "Start the periodic pattern scan with alert dispatch plus the read-only status HTTP server",
		RunE:  runScanLoop,
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Scan once and print results without dispatching alerts",
		Long:  "Fetch the current candle windows, run the active detector and print per-instrument results. No alerts are sent and no dedup state is touched.",
		RunE:  runCheck,
	}

	rootCmd.AddCommand(runCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func setupLogLevel(cmd *cobra.Command) {
	level, _ := cmd.Flags().GetString("log-level")
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
