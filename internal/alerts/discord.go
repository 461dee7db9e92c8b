package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/Jackbryan316/Session-ob/internal/domain"
)

// Embed colors matching the original alert scheme
const (
	colorBullish = 65280    // green
	colorBearish = 16711680 // red
)

// DiscordConfig holds webhook delivery settings
type DiscordConfig struct {
	WebhookURL          string
	TimezoneOffsetHours int
	RequestTimeout      time.Duration
}

// DiscordNotifier posts alert embeds to a Discord webhook. A circuit breaker
// stops hammering a dead webhook: after three consecutive failures the
// breaker opens for a minute and deliveries fail fast.
type DiscordNotifier struct {
	cfg     DiscordConfig
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewDiscordNotifier creates a webhook notifier with defaults applied
func NewDiscordNotifier(cfg DiscordConfig) *DiscordNotifier {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	settings := gobreaker.Settings{
		Name:        "discord-webhook",
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).
				Str("from", from.String()).Str("to", to.String()).
				Msg("notification breaker state change")
		},
	}
	return &DiscordNotifier{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Timestamp   string `json:"timestamp"`
}

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

// Notify formats the signal into a Discord embed and posts it. Discord
// acknowledges webhook posts with 204 No Content; anything else is a
// delivery failure.
func (n *DiscordNotifier) Notify(ctx context.Context, signal domain.Signal) error {
	color := colorBullish
	if signal.Direction == domain.Bearish {
		color = colorBearish
	}
	localTime := time.Now().UTC().Add(time.Duration(n.cfg.TimezoneOffsetHours) * time.Hour)

	payload := discordPayload{Embeds: []discordEmbed{{
		Title: Title(signal),
		Description: fmt.Sprintf(
			"📍 **Entry**: `%.5f`\n🎯 **TP**: `%.5f`\n🛑 **SL**: `%.5f`\n\n[📈 View on TradingView](%s)",
			signal.Entry, signal.TakeProfit, signal.StopLoss, ChartURL(signal.Instrument)),
		Color:     color,
		Timestamp: localTime.Format(time.RFC3339),
	}}}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal alert payload: %w", err)
	}

	_, err = n.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.WebhookURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build webhook request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("post webhook: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNoContent {
			return nil, fmt.Errorf("webhook delivery failed: status %d", resp.StatusCode)
		}
		return nil, nil
	})
	return err
}
