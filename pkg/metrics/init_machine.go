package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initMachineMetrics() {
	r.SymbolsConvertedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "enigma_symbols_converted_total",
			Help: "Total number of symbols passed through the machine",
		},
	)

	r.MessagesConvertedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "enigma_messages_converted_total",
			Help: "Total number of message lines converted",
		},
	)

	r.MessageLengthSymbols = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enigma_message_length_symbols",
			Help:    "Converted symbols per message line",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	r.ConversionDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enigma_conversion_duration_seconds",
			Help:    "Time to convert one message line in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	r.RotorAdvancesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "enigma_rotor_advances_total",
			Help: "Total number of rotor advances by slot",
		},
		[]string{"slot"},
	)

	r.DoubleStepsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "enigma_double_steps_total",
			Help: "Total number of keypresses that triggered the double step",
		},
	)
}
