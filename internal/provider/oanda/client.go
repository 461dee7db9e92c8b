// Package oanda fetches mid-price candles from the OANDA v3 REST API.
package oanda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/Jackbryan316/Session-ob/internal/domain"
)

// DefaultBaseURL points at the OANDA practice environment
const DefaultBaseURL = "https://api-fxpractice.oanda.com"

// Config holds the provider settings
type Config struct {
	BaseURL        string
	APIKey         string
	Granularity    string // e.g. "H4"
	CandleCount    int
	RequestTimeout time.Duration
	RPS            float64 // token-bucket refill rate toward the API
	Burst          int
}

// Client is the candle provider. One instance is shared by all instruments;
// the limiter keeps the scan loop inside OANDA's request budget.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a provider client with defaults applied
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.CandleCount <= 0 {
		cfg.CandleCount = 15
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
	}
}

// Wire types for /v3/instruments/{instrument}/candles with price=M
type candlesResponse struct {
	Candles []rawCandle `json:"candles"`
}

type rawCandle struct {
	Complete bool    `json:"complete"`
	Time     string  `json:"time"`
	Mid      *rawMid `json:"mid"`
}

type rawMid struct {
	O string `json:"o"`
	H string `json:"h"`
	L string `json:"l"`
	C string `json:"c"`
}

// Candles fetches the configured number of recent candles for one
// instrument and returns only the completed, well-formed bars, oldest to
// newest. A malformed bar is logged and skipped without failing the fetch;
// a transport error or non-2xx status fails the whole instrument.
func (c *Client) Candles(ctx context.Context, instrument string) (domain.Window, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	q := url.Values{}
	q.Set("count", strconv.Itoa(c.cfg.CandleCount))
	q.Set("granularity", c.cfg.Granularity)
	q.Set("price", "M")
	endpoint := fmt.Sprintf("%s/v3/instruments/%s/candles?%s", c.cfg.BaseURL, instrument, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build candles request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch candles for %s: %w", instrument, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch candles for %s: status %d", instrument, resp.StatusCode)
	}

	var body candlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode candles for %s: %w", instrument, err)
	}

	window := make(domain.Window, 0, len(body.Candles))
	for _, raw := range body.Candles {
		if !raw.Complete {
			continue
		}
		candle, err := normalize(raw)
		if err != nil {
			log.Warn().Err(err).Str("instrument", instrument).Str("time", raw.Time).
				Msg("skipping malformed candle")
			continue
		}
		window = append(window, candle)
	}
	return window, nil
}

// normalize converts one raw bar into a validated domain candle
func normalize(raw rawCandle) (domain.Candle, error) {
	if raw.Mid == nil {
		return domain.Candle{}, fmt.Errorf("%w: missing mid prices", domain.ErrMalformedCandle)
	}
	open, err := parsePrice("open", raw.Mid.O)
	if err != nil {
		return domain.Candle{}, err
	}
	high, err := parsePrice("high", raw.Mid.H)
	if err != nil {
		return domain.Candle{}, err
	}
	low, err := parsePrice("low", raw.Mid.L)
	if err != nil {
		return domain.Candle{}, err
	}
	closePx, err := parsePrice("close", raw.Mid.C)
	if err != nil {
		return domain.Candle{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, raw.Time)
	if err != nil {
		return domain.Candle{}, fmt.Errorf("%w: bad timestamp %q", domain.ErrMalformedCandle, raw.Time)
	}
	return domain.NewCandle(open, high, low, closePx, ts, raw.Complete)
}

func parsePrice(field, value string) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("%w: missing %s", domain.ErrMalformedCandle, field)
	}
	px, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric %s %q", domain.ErrMalformedCandle, field, value)
	}
	return px, nil
}
