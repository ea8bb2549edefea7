package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Machine Metrics
	SymbolsConvertedTotal  prometheus.Counter
	MessagesConvertedTotal prometheus.Counter
	MessageLengthSymbols   prometheus.Histogram
	ConversionDuration     prometheus.Histogram
	RotorAdvancesTotal     *prometheus.CounterVec
	DoubleStepsTotal       prometheus.Counter

	// Session Metrics
	SessionsTotal  prometheus.Counter
	SessionsActive prometheus.Gauge
	LinesTotal     *prometheus.CounterVec
	SetupsTotal    *prometheus.CounterVec
	ErrorsTotal    *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initMachineMetrics()
	r.initSessionMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
