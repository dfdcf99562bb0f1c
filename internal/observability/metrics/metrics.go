// Package metrics defines the Prometheus instruments used across the
// bot platform. All record methods are nil-safe so callers can pass a
// nil *Metrics in tests without guarding every call site.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the platform-wide Prometheus collectors.
type Metrics struct {
	DispatchTotal    *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec
	OutboundTotal    *prometheus.CounterVec
	QueueDepth       prometheus.Gauge
	SessionResets    *prometheus.CounterVec
}

// New builds the collectors and registers them on reg. Passing
// prometheus.DefaultRegisterer wires them into the default /metrics
// endpoint; tests pass their own registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "botplatform",
			Subsystem: "dispatch",
			Name:      "turns_total",
			Help:      "Conversation turns processed, by tenant and outcome.",
		}, []string{"tenant_id", "status"}),
		DispatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "botplatform",
			Subsystem: "dispatch",
			Name:      "turn_duration_seconds",
			Help:      "Wall-clock time spent handling a conversation turn.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"tenant_id"}),
		OutboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "botplatform",
			Subsystem: "messaging",
			Name:      "outbound_total",
			Help:      "Outbound messages sent, by provider and outcome.",
		}, []string{"provider", "status"}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "botplatform",
			Subsystem: "queue",
			Name:      "depth",
			Help:      "Messages currently buffered in the inbound queue.",
		}),
		SessionResets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "botplatform",
			Subsystem: "session",
			Name:      "resets_total",
			Help:      "Session resets, by reason (expired or unknown_step).",
		}, []string{"reason"}),
	}
	if reg != nil {
		reg.MustRegister(m.DispatchTotal, m.DispatchDuration, m.OutboundTotal, m.QueueDepth, m.SessionResets)
	}
	return m
}

// RecordDispatch counts one handled turn and its duration.
func (m *Metrics) RecordDispatch(tenantID, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.DispatchTotal.WithLabelValues(tenantID, status).Inc()
	m.DispatchDuration.WithLabelValues(tenantID).Observe(elapsed.Seconds())
}

// RecordOutbound counts one outbound send attempt.
func (m *Metrics) RecordOutbound(provider, status string) {
	if m == nil {
		return
	}
	m.OutboundTotal.WithLabelValues(provider, status).Inc()
}

// RecordReset counts one forced session reset.
func (m *Metrics) RecordReset(reason string) {
	if m == nil {
		return
	}
	m.SessionResets.WithLabelValues(reason).Inc()
}

// SetQueueDepth reports the current inbound queue backlog.
func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.QueueDepth.Set(float64(n))
}
