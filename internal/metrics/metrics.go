// Package metrics exposes the scan pipeline's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Registry holds all Prometheus metrics for the alert pipeline
type Registry struct {
	registry *prometheus.Registry

	// Scan loop metrics
	ScanCycles        prometheus.Counter
	MarketClosedSkips prometheus.Counter
	CycleDuration     prometheus.Histogram
	LastScanUnix      prometheus.Gauge

	// Per-instrument fetch outcomes
	FetchErrors *prometheus.CounterVec

	// Detection and delivery outcomes
	SignalsDetected  *prometheus.CounterVec
	AlertsSent       prometheus.Counter
	AlertsFailed     prometheus.Counter
	AlertsSuppressed prometheus.Counter
}

// NewRegistry creates a registry with all pipeline metrics registered
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		ScanCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sessionob_scan_cycles_total",
			Help: "Total number of completed scan cycles",
		}),

		MarketClosedSkips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sessionob_market_closed_skips_total",
			Help: "Ticks skipped because the market hours gate was closed",
		}),

		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sessionob_cycle_duration_seconds",
			Help:    "Duration of one full scan cycle in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
		}),

		LastScanUnix: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sessionob_last_scan_timestamp_seconds",
			Help: "Unix timestamp of the last completed scan cycle",
		}),

		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sessionob_fetch_errors_total",
			Help: "Candle fetch failures by instrument",
		}, []string{"instrument"}),

		SignalsDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sessionob_signals_detected_total",
			Help: "Detected pattern signals by pattern and direction",
		}, []string{"pattern", "direction"}),

		AlertsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sessionob_alerts_sent_total",
			Help: "Alerts delivered to the notification sink",
		}),

		AlertsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sessionob_alerts_failed_total",
			Help: "Alert deliveries that failed after one attempt",
		}),

		AlertsSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sessionob_alerts_suppressed_total",
			Help: "Signals suppressed by the dedup store",
		}),
	}

	r.registry.MustRegister(
		r.ScanCycles,
		r.MarketClosedSkips,
		r.CycleDuration,
		r.LastScanUnix,
		r.FetchErrors,
		r.SignalsDetected,
		r.AlertsSent,
		r.AlertsFailed,
		r.AlertsSuppressed,
	)
	return r
}

// Handler returns the /metrics HTTP handler for this registry
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Snapshot gathers current metric values keyed by metric name. Labeled
// metrics are summed across label sets.
func (r *Registry) Snapshot() (map[string]float64, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}
	snapshot := make(map[string]float64, len(families))
	for _, family := range families {
		var total float64
		for _, m := range family.GetMetric() {
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				total += m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				total += m.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
		snapshot[family.GetName()] = total
	}
	return snapshot, nil
}
