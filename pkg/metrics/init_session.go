package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSessionMetrics() {
	r.SessionsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "enigma_sessions_total",
			Help: "Total number of sessions started",
		},
	)

	r.SessionsActive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "enigma_sessions_active",
			Help: "Number of sessions currently reading input",
		},
	)

	r.LinesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "enigma_input_lines_total",
			Help: "Total number of input lines by type",
		},
		[]string{"type"}, // setting, message, blank
	)

	r.SetupsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "enigma_setups_total",
			Help: "Total number of setting lines applied by result",
		},
		[]string{"result"},
	)

	r.ErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "enigma_errors_total",
			Help: "Total number of errors by kind",
		},
		[]string{"kind"},
	)
}
