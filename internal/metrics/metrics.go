// Package metrics exposes run observability: prometheus counters for
// validation outcomes and reconnects, plus a small JSON status endpoint.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/session"
)

// Outcome label values for the numbers counter.
const (
	ResultExists        = "exists"
	ResultMissing       = "missing"
	ResultIndeterminate = "indeterminate"
)

// Metrics aggregates the run counters behind a private registry.
type Metrics struct {
	registry *prometheus.Registry

	numbersTotal    *prometheus.CounterVec
	reconnectsTotal prometheus.Counter
	sessionReady    prometheus.Gauge

	mu           sync.Mutex
	sessionState session.State
	processed    int
}

// New creates a Metrics set with its own registry, so tests can run many
// instances without collisions.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		numbersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "validatewhatsapp_numbers_total",
				Help: "Validated numbers by outcome.",
			},
			[]string{"result"},
		),
		reconnectsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "validatewhatsapp_reconnects_total",
				Help: "Transient reconnect attempts.",
			},
		),
		sessionReady: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "validatewhatsapp_session_ready",
				Help: "1 while the session connection is open.",
			},
		),
	}
	m.registry.MustRegister(m.numbersTotal, m.reconnectsTotal, m.sessionReady)
	return m
}

// ObserveOutcome records one validation result.
func (m *Metrics) ObserveOutcome(exists bool, definitive bool) {
	result := ResultIndeterminate
	if definitive {
		result = ResultMissing
		if exists {
			result = ResultExists
		}
	}
	m.numbersTotal.WithLabelValues(result).Inc()

	m.mu.Lock()
	m.processed++
	m.mu.Unlock()
}

// ObserveState records a session state transition. Safe to pass as a
// session.WithStateHook callback.
func (m *Metrics) ObserveState(s session.State) {
	switch s {
	case session.StateOpen:
		m.sessionReady.Set(1)
	case session.StateClosedTransient:
		m.sessionReady.Set(0)
		m.reconnectsTotal.Inc()
	default:
		m.sessionReady.Set(0)
	}

	m.mu.Lock()
	m.sessionState = s
	m.mu.Unlock()
}

func (m *Metrics) snapshot() (session.State, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionState, m.processed
}
