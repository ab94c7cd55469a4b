package session

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	CartAdditions  prometheus.Counter
	Completions    prometheus.Counter
	ActiveSessions prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CartAdditions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "showcase_cart_additions_total",
			Help: "Add-to-cart actions across all sessions",
		}),
		Completions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "showcase_completions_total",
			Help: "Sessions that reached their first cart addition",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "showcase_sessions_active",
			Help: "Open showcase sessions",
		}),
	}

	reg.MustRegister(m.CartAdditions, m.Completions, m.ActiveSessions)
	return m
}

func (m *Metrics) cartAdded() {
	if m != nil {
		m.CartAdditions.Inc()
	}
}

func (m *Metrics) completed() {
	if m != nil {
		m.Completions.Inc()
	}
}

func (m *Metrics) setActive(n int) {
	if m != nil {
		m.ActiveSessions.Set(float64(n))
	}
}
