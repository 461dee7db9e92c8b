package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Jackbryan316/Session-ob/internal/alerts"
	"github.com/Jackbryan316/Session-ob/internal/config"
	"github.com/Jackbryan316/Session-ob/internal/dedup"
	"github.com/Jackbryan316/Session-ob/internal/domain/pattern"
	httpiface "github.com/Jackbryan316/Session-ob/internal/interfaces/http"
	"github.com/Jackbryan316/Session-ob/internal/journal"
	"github.com/Jackbryan316/Session-ob/internal/metrics"
	"github.com/Jackbryan316/Session-ob/internal/provider/oanda"
	"github.com/Jackbryan316/Session-ob/internal/scan"
)

func runScanLoop(cmd *cobra.Command, _ []string) error {
	setupLogLevel(cmd)
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	detector, err := pattern.New(cfg.Pattern.Active, cfg.PatternSettings())
	if err != nil {
		return err
	}

	store, err := buildDedupStore(ctx, cfg)
	if err != nil {
		return err
	}

	events, err := journal.Open(cfg.JournalPath)
	if err != nil {
		return err
	}
	defer events.Close()

	registry := metrics.NewRegistry()
	status := scan.NewStatus()

	provider := oanda.NewClient(oanda.Config{
		BaseURL:     cfg.OandaBaseURL,
		APIKey:      cfg.OandaAPIKey,
		Granularity: cfg.Timeframe,
		CandleCount: cfg.CandleCount,
	})

	notifier := alerts.NewDiscordNotifier(alerts.DiscordConfig{
		WebhookURL:          cfg.DiscordWebhookURL,
		TimezoneOffsetHours: cfg.TimezoneOffsetHours,
	})

	scanner := scan.New(scan.Config{
		Instruments:         cfg.Instruments,
		Interval:            cfg.Interval(),
		TimezoneOffsetHours: cfg.TimezoneOffsetHours,
		SundayReopenHour:    cfg.SundayReopenHour,
	}, scan.Deps{
		Provider: provider,
		Detector: detector,
		Dedup:    store,
		Notifier: notifier,
		Journal:  events,
		Metrics:  registry,
		Status:   status,
	})

	server := httpiface.NewServer(
		httpiface.DefaultServerConfig(cfg.HTTPAddr),
		status,
		httpiface.BotInfo{
			Name:        "Session OB Bot",
			Instruments: cfg.Instruments,
			Timeframe:   cfg.Timeframe,
			Pattern:     detector.Name(),
		},
		registry.Handler(),
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("status server stopped")
		}
	}()

	err = scanner.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Warn().Err(shutdownErr).Msg("status server shutdown")
	}
	events.Append("scan loop stopped")
	log.Info().Msg("shutdown complete")
	return err
}

// buildDedupStore picks Redis when configured, in-memory otherwise. An
// unreachable configured Redis is a startup failure, not a silent fallback.
func buildDedupStore(ctx context.Context, cfg *config.Config) (dedup.Store, error) {
	if cfg.RedisAddr == "" {
		return dedup.NewMemoryStore(), nil
	}
	store := dedup.NewRedisStore(cfg.RedisAddr)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		return nil, err
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("using redis dedup store")
	return store, nil
}
