// Package metrics records per-run counters and exports them in the
// Prometheus text format for the node exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ccollicutt/accessstat/pkg/parser"
)

const (
	Namespace = "accessstat"

	LabelResult = "result"
	LabelClass  = "class"

	ResultParsed = "parsed"
	ResultFailed = "failed"
)

// Recorder holds the counters of one run on its own registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	lines    *prometheus.CounterVec
	requests *prometheus.CounterVec
	duration prometheus.Gauge
	lastRun  prometheus.Gauge
}

// NewRecorder creates a recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		lines: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "lines_total",
				Help:      "Log lines read, by extraction result.",
			},
			[]string{LabelResult},
		),
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "requests_total",
				Help:      "Parsed requests, by status class.",
			},
			[]string{LabelClass},
		),
		duration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last analysis run.",
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last analysis run finished.",
		}),
	}
}

// LineParsed counts a successfully extracted line.
func (r *Recorder) LineParsed(class parser.StatusClass) {
	if r == nil {
		return
	}
	r.lines.WithLabelValues(ResultParsed).Inc()
	r.requests.WithLabelValues(class.String()).Inc()
}

// LineFailed counts a line that could not be extracted.
func (r *Recorder) LineFailed() {
	if r == nil {
		return
	}
	r.lines.WithLabelValues(ResultFailed).Inc()
}

// RunFinished records the duration and completion time of a run.
func (r *Recorder) RunFinished(start, end time.Time) {
	if r == nil {
		return
	}
	r.duration.Set(end.Sub(start).Seconds())
	r.lastRun.Set(float64(end.Unix()))
}

// Registry returns the registry holding the run's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
