// Package config loads pipeline configuration from YAML with environment
// overrides. Secrets come from the environment only (optionally via a local
// .env file) and missing required secrets fail startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Jackbryan316/Session-ob/internal/domain/pattern"
	"github.com/Jackbryan316/Session-ob/internal/domain/session"
)

// PatternConfig selects the active detector and its knobs
type PatternConfig struct {
	Active        string  `yaml:"active"`
	RiskReward    float64 `yaml:"risk_reward"`
	SweepLookback int     `yaml:"sweep_lookback"`
	SweepBuffer   float64 `yaml:"sweep_buffer"`
}

// Config is the full pipeline configuration
type Config struct {
	Instruments         []string      `yaml:"instruments"`
	Timeframe           string        `yaml:"timeframe"`
	CandleCount         int           `yaml:"candle_count"`
	ScanIntervalSeconds int           `yaml:"scan_interval_seconds"`
	TimezoneOffsetHours int           `yaml:"timezone_offset_hours"`
	SundayReopenHour    int           `yaml:"sunday_reopen_hour"`
	Pattern             PatternConfig `yaml:"pattern"`
	HTTPAddr            string        `yaml:"http_addr"`
	RedisAddr           string        `yaml:"redis_addr"`
	JournalPath         string        `yaml:"journal_path"`
	OandaBaseURL        string        `yaml:"oanda_base_url"`

	// Secrets, environment-only
	OandaAPIKey       string `yaml:"-"`
	DiscordWebhookURL string `yaml:"-"`
}

// Default returns the configuration used when no YAML file overrides it
func Default() Config {
	return Config{
		Instruments:         []string{"XAU_USD", "GBP_USD", "EUR_USD"},
		Timeframe:           "H4",
		CandleCount:         15,
		ScanIntervalSeconds: 300,
		TimezoneOffsetHours: 0,
		SundayReopenHour:    session.DefaultReopenHour,
		Pattern: PatternConfig{
			Active:        pattern.NameLiquiditySweep,
			RiskReward:    2,
			SweepLookback: 10,
			SweepBuffer:   0,
		},
		HTTPAddr:    ":10000",
		JournalPath: "sessionob.log",
	}
}

// Load reads the YAML file at path (optional), applies .env and environment
// overrides, and validates the result
func Load(path string) (*Config, error) {
	// Missing .env is fine; it only exists in local development
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.OandaAPIKey = os.Getenv("OANDA_API_KEY")
	cfg.DiscordWebhookURL = os.Getenv("DISCORD_WEBHOOK_URL")
	if v := os.Getenv("TIMEZONE_OFFSET"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("TIMEZONE_OFFSET must be an integer: %w", err)
		}
		cfg.TimezoneOffsetHours = offset
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the startup-fatal configuration rules
func (c *Config) Validate() error {
	if c.DiscordWebhookURL == "" {
		return fmt.Errorf("DISCORD_WEBHOOK_URL is required")
	}
	if c.OandaAPIKey == "" {
		return fmt.Errorf("OANDA_API_KEY is required")
	}
	if len(c.Instruments) == 0 {
		return fmt.Errorf("at least one instrument is required")
	}
	if c.ScanIntervalSeconds <= 0 {
		return fmt.Errorf("scan_interval_seconds must be positive")
	}
	if _, err := pattern.New(c.Pattern.Active, c.PatternSettings()); err != nil {
		return err
	}
	return nil
}

// Interval returns the scan interval as a duration
func (c *Config) Interval() time.Duration {
	return time.Duration(c.ScanIntervalSeconds) * time.Second
}

// PatternSettings maps the YAML pattern block onto detector knobs
func (c *Config) PatternSettings() pattern.Config {
	return pattern.Config{
		RiskReward:    c.Pattern.RiskReward,
		SweepLookback: c.Pattern.SweepLookback,
		SweepBuffer:   c.Pattern.SweepBuffer,
	}
}
