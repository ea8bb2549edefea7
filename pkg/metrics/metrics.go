package metrics

import (
	"strconv"
	"time"

	"github.com/dd0wney/cluso-enigma/pkg/enigma"
	"github.com/prometheus/client_golang/prometheus"
)

// Line types for LinesTotal.
const (
	LineSetting = "setting"
	LineMessage = "message"
	LineBlank   = "blank"
)

// RecordStep records the rotor movement of one keypress.
func (r *Registry) RecordStep(step enigma.Step) {
	r.SymbolsConvertedTotal.Inc()
	for slot, moved := range step.Advanced {
		if moved {
			r.RotorAdvancesTotal.WithLabelValues(strconv.Itoa(slot)).Inc()
		}
	}
	if step.DoubleStep() {
		r.DoubleStepsTotal.Inc()
	}
}

// RecordMessage records a converted message line.
func (r *Registry) RecordMessage(symbols int, duration time.Duration) {
	r.MessagesConvertedTotal.Inc()
	r.MessageLengthSymbols.Observe(float64(symbols))
	r.ConversionDuration.Observe(duration.Seconds())
}

// RecordLine counts an input line of the given type.
func (r *Registry) RecordLine(lineType string) {
	r.LinesTotal.WithLabelValues(lineType).Inc()
}

// RecordSetup records a setting line and whether it was applied.
func (r *Registry) RecordSetup(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	r.SetupsTotal.WithLabelValues(result).Inc()
}

// RecordError counts an error under kind.
func (r *Registry) RecordError(kind string) {
	r.ErrorsTotal.WithLabelValues(kind).Inc()
}

// SessionStarted marks the start of a session.
func (r *Registry) SessionStarted() {
	r.SessionsTotal.Inc()
	r.SessionsActive.Inc()
}

// SessionEnded marks the end of a session started with SessionStarted.
func (r *Registry) SessionEnded() {
	r.SessionsActive.Dec()
}

// WriteTextfile writes every metric to path in the Prometheus text format,
// as read by the node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
