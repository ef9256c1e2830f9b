package calltimer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports timed calls to Prometheus, one series per label.
type Metrics struct {
	callsTimed   *prometheus.CounterVec
	lastDuration *prometheus.GaugeVec
}

// NewMetrics registers its collectors on reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		callsTimed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "calltimer_calls_total",
			Help: "Number of calls timed, by label",
		}, []string{"label"}),
		lastDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "calltimer_last_call_duration_seconds",
			Help: "Duration of the most recent timed call, by label",
		}, []string{"label"}),
	}
}

func (m *Metrics) Observe(label string, elapsed time.Duration) {
	m.callsTimed.WithLabelValues(label).Inc()
	m.lastDuration.WithLabelValues(label).Set(elapsed.Seconds())
}
