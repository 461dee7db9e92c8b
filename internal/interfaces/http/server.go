// Package http serves the read-only observation surface: an HTML dashboard,
// a JSON status endpoint, a health probe and Prometheus metrics. Nothing
// here influences the scan loop.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/Jackbryan316/Session-ob/internal/scan"
)

// ServerConfig holds status server settings
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the standard timeouts on the given address
func DefaultServerConfig(addr string) ServerConfig {
	return ServerConfig{
		Addr:         addr,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// BotInfo is the static dashboard context for this deployment
type BotInfo struct {
	Name        string
	Instruments []string
	Timeframe   string
	Pattern     string
}

// Server is the read-only status HTTP server
type Server struct {
	router *mux.Router
	server *http.Server
	status *scan.Status
	info   BotInfo
}

// NewServer wires the routes and returns a server ready to start
func NewServer(cfg ServerConfig, status *scan.Status, info BotInfo, metricsHandler http.Handler) *Server {
	s := &Server{
		router: mux.NewRouter(),
		status: status,
		info:   info,
	}
	s.router.HandleFunc("/", s.handleDashboard).Methods(http.MethodGet)
	s.router.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", metricsHandler).Methods(http.MethodGet)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Start blocks serving requests until Shutdown is called
func (s *Server) Start() error {
	log.Info().Str("addr", s.server.Addr).Msg("status server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("status server: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

type statusResponse struct {
	Status      string   `json:"status"`
	LastChecked string   `json:"last_checked"`
	Pairs       []string `json:"pairs"`
	Timeframe   string   `json:"timeframe"`
	Pattern     string   `json:"pattern"`
	LastSignal  string   `json:"last_signal"`
}

func (s *Server) currentStatus() statusResponse {
	snapshot := s.status.Snapshot()
	state := "Stopped"
	if snapshot.Running {
		state = "Running"
	}
	lastChecked := "never"
	if !snapshot.LastChecked.IsZero() {
		lastChecked = snapshot.LastChecked.Format("2006-01-02 15:04:05")
	}
	return statusResponse{
		Status:      state,
		LastChecked: lastChecked,
		Pairs:       s.info.Instruments,
		Timeframe:   s.info.Timeframe,
		Pattern:     s.info.Pattern,
		LastSignal:  snapshot.LastSignal,
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.currentStatus()); err != nil {
		log.Error().Err(err).Msg("encode status response")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Trading Bot Dashboard</title>
    <style>
        body { font-family: Arial; background: #111; color: #eee; padding: 20px; }
        h1 { color: #00ffcc; }
        .bot-card { background: #222; padding: 20px; margin-bottom: 15px; border-radius: 10px; }
        .bot-card h2 { color: #00c3ff; }
    </style>
</head>
<body>
    <h1>📊 Trading Bot Dashboard</h1>
    <div class="bot-card">
        <h2>{{.Name}}</h2>
        <p>Status: <b>{{.Resp.Status}}</b></p>
        <p>Last Checked: {{.Resp.LastChecked}}</p>
        <p>Timeframe: {{.Resp.Timeframe}}</p>
        <p>Pattern: {{.Resp.Pattern}}</p>
        <p>Pairs Monitored: {{.Pairs}}</p>
        <p>Last Signal: <b>{{.Resp.LastSignal}}</b></p>
    </div>
</body>
</html>
`))

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	resp := s.currentStatus()
	data := struct {
		Name  string
		Pairs string
		Resp  statusResponse
	}{
		Name:  s.info.Name,
		Pairs: strings.Join(resp.Pairs, ", "),
		Resp:  resp,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("render dashboard")
	}
}
