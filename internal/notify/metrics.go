package notify

import "github.com/prometheus/client_golang/prometheus"

const (
	resultDelivered = "delivered"
	resultFailed    = "failed"
	resultDropped   = "dropped"
)

type Metrics struct {
	Notifications *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "showcase_notifications_total",
				Help: "Completion notifications by sink and result",
			},
			[]string{"sink", "result"},
		),
	}

	reg.MustRegister(m.Notifications)
	return m
}

func (m *Metrics) observe(sink, result string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(sink, result).Inc()
}
