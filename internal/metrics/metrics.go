// Package metrics exposes Prometheus counters for ping ingestion, sweep
// passes and alert dispatch.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for cronmon.
type Metrics struct {
	PingsIngestedTotal   prometheus.Counter
	SweepsTotal          prometheus.Counter
	MonitorsOverdueTotal prometheus.Counter
	AlertsSentTotal      *prometheus.CounterVec
	AlertsFailedTotal    *prometheus.CounterVec
	ActiveMonitors       prometheus.Gauge

	registry *prometheus.Registry
}

// New creates a new Metrics instance with all metrics registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		PingsIngestedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cronmon_pings_ingested_total",
			Help: "Total number of successful check-ins recorded",
		}),
		SweepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cronmon_sweeps_total",
			Help: "Total number of reconciliation passes executed",
		}),
		MonitorsOverdueTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cronmon_monitors_overdue_total",
			Help: "Total number of overdue findings across all sweeps",
		}),
		AlertsSentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cronmon_alerts_sent_total",
				Help: "Total number of alerts delivered",
			},
			[]string{"channel"},
		),
		AlertsFailedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cronmon_alerts_failed_total",
				Help: "Total number of alert deliveries that failed",
			},
			[]string{"channel"},
		),
		ActiveMonitors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cronmon_active_monitors",
			Help: "Number of monitors evaluated by the most recent sweep",
		}),
		registry: reg,
	}

	reg.MustRegister(
		m.PingsIngestedTotal,
		m.SweepsTotal,
		m.MonitorsOverdueTotal,
		m.AlertsSentTotal,
		m.AlertsFailedTotal,
		m.ActiveMonitors,
	)

	return m
}

// Handler returns the HTTP handler serving this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
