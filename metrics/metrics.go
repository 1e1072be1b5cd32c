// metrics/metrics.go
package metrics

import (
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// maxRuleLabelLength caps the rule label so a hostile case table cannot
// grow label values without bound.
const maxRuleLabelLength = 128

// Recorder counts rule evaluations on its own registry. It never serves
// HTTP; WriteTextfile dumps the registry for a node-exporter textfile
// collector.
type Recorder struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewRecorder builds a Recorder with the evaluation counter, the duration
// histogram and the Go runtime collector registered.
func NewRecorder(logger *zap.Logger) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rulebook_evaluations_total",
				Help: "Rule evaluations by rule and outcome.",
			},
			[]string{"rule", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "rulebook_evaluation_duration_seconds",
				Help: "Duration of rule evaluations.",
				// buckets in seconds
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
			},
			[]string{"rule"},
		),
	}

	r.mustRegister(logger, "Go collector", collectors.NewGoCollector())
	r.mustRegister(logger, "evaluation counter", r.evaluations)
	r.mustRegister(logger, "evaluation histogram", r.duration)
	return r
}

// mustRegister registers c, tolerating AlreadyRegisteredError. Any other
// failure is a programming error: it is logged fatally, or panics when no
// logger is available.
func (r *Recorder) mustRegister(logger *zap.Logger, name string, c prometheus.Collector) {
	if err := r.registry.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return
		}
		if logger != nil {
			logger.Fatal("failed to register "+name, zap.Error(err))
		} else {
			panic("metrics: failed to register " + name + ": " + err.Error())
		}
	}
}

// Observe records one evaluation of rule with the given outcome.
func (r *Recorder) Observe(rule, outcome string, d time.Duration) {
	if len(rule) > maxRuleLabelLength {
		rule = truncateUTF8(rule, maxRuleLabelLength-3) + "..."
	}
	r.evaluations.WithLabelValues(rule, outcome).Inc()
	r.duration.WithLabelValues(rule).Observe(d.Seconds())
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the registry in the text exposition format to path,
// atomically via a temporary file.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// truncateUTF8 truncates s to at most maxBytes bytes without splitting
// multi-byte UTF-8 characters. If maxBytes <= 0, returns an empty string.
func truncateUTF8(s string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}
