package daemon

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks daemon statistics. Each server owns its registry so several
// servers can run in one process (tests).
type Metrics struct {
	registry *prometheus.Registry

	EventsSent       prometheus.Counter
	EventsReceived   prometheus.Counter
	EventsDropped    prometheus.Counter
	Broadcasts       prometheus.Counter
	ConnectedClients prometheus.Gauge
	StartTime        time.Time
}

// NewMetrics creates a new Metrics instance with its own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		EventsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "embudo",
			Subsystem: "daemon",
			Name:      "events_sent_total",
			Help:      "Messages queued to connected clients",
		}),
		EventsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "embudo",
			Subsystem: "daemon",
			Name:      "events_received_total",
			Help:      "Board change events received from clients",
		}),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "embudo",
			Subsystem: "daemon",
			Name:      "events_dropped_total",
			Help:      "Messages dropped because a client queue was full",
		}),
		Broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "embudo",
			Subsystem: "daemon",
			Name:      "broadcasts_total",
			Help:      "Events fanned out to subscribers",
		}),
		ConnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "embudo",
			Subsystem: "daemon",
			Name:      "connected_clients",
			Help:      "Currently connected clients",
		}),
		StartTime: time.Now(),
	}
	m.registry.MustRegister(m.EventsSent, m.EventsReceived, m.EventsDropped, m.Broadcasts, m.ConnectedClients)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Uptime since the metrics were created.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.StartTime)
}
