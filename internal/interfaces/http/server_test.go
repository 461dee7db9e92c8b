package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jackbryan316/Session-ob/internal/metrics"
	"github.com/Jackbryan316/Session-ob/internal/scan"
)

func newTestServer() (*Server, *scan.Status) {
	status := scan.NewStatus()
	registry := metrics.NewRegistry()
	server := NewServer(DefaultServerConfig(":0"), status, BotInfo{
		Name:        "Session OB Bot",
		Instruments: []string{"XAU_USD", "GBP_USD"},
		Timeframe:   "H4",
		Pattern:     "liquidity_sweep",
	}, registry.Handler())
	return server, status
}

func TestStatusEndpoint(t *testing.T) {
	server, status := newTestServer()
	status.SetRunning(true)
	status.CycleCompleted(time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC))
	status.SignalRaised("Bullish liquidity_sweep on XAU_USD @ 2400.50000 (SL 2395.00000 / TP 2411.50000)")

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Running", body["status"])
	assert.Equal(t, "2025-03-04 12:00:00", body["last_checked"])
	assert.Equal(t, "H4", body["timeframe"])
	assert.Contains(t, body["last_signal"], "XAU_USD")
}

func TestStatusEndpoint_BeforeFirstCycle(t *testing.T) {
	server, _ := newTestServer()

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Stopped", body["status"])
	assert.Equal(t, "never", body["last_checked"])
	assert.Equal(t, "No setup", body["last_signal"])
}

func TestDashboard(t *testing.T) {
	server, status := newTestServer()
	status.SetRunning(true)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	page := rec.Body.String()
	assert.Contains(t, page, "Session OB Bot")
	assert.Contains(t, page, "XAU_USD, GBP_USD")
	assert.Contains(t, page, "Running")
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer()

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	status := scan.NewStatus()
	registry := metrics.NewRegistry()
	registry.ScanCycles.Inc()
	server := NewServer(DefaultServerConfig(":0"), status, BotInfo{Name: "Session OB Bot"}, registry.Handler())

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sessionob_scan_cycles_total 1")
}

func TestStatusSurfaceIsReadOnly(t *testing.T) {
	server, _ := newTestServer()

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/status", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
