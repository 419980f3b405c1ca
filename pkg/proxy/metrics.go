package proxy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects relay outcomes.
type Metrics struct {
	relaysTotal   *prometheus.CounterVec
	relayFailures *prometheus.CounterVec
	relayDuration *prometheus.HistogramVec
}

// NewMetrics registers the relay metrics on the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		relaysTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gesneu",
			Subsystem: "proxy",
			Name:      "relays_total",
			Help:      "Relayed requests by method and backend status",
		}, []string{"method", "status"}),

		relayFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gesneu",
			Subsystem: "proxy",
			Name:      "relay_failures_total",
			Help:      "Relays that never produced a backend response",
		}, []string{"reason"}),

		relayDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gesneu",
			Subsystem: "proxy",
			Name:      "relay_duration_seconds",
			Help:      "Relay round-trip duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

func (m *Metrics) observeRelay(method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.relaysTotal.WithLabelValues(method, status).Inc()
	m.relayDuration.WithLabelValues(method).Observe(seconds)
}

func (m *Metrics) observeFailure(reason string) {
	if m == nil {
		return
	}
	m.relayFailures.WithLabelValues(reason).Inc()
}
