// Package metrics exposes Prometheus collectors for solver runs.
package metrics

import (
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/FabianaFerreira/modified-newton/system"
)

// Recorder holds the solver collectors on its own registry.
type Recorder struct {
	Registry *prometheus.Registry

	runs       *prometheus.CounterVec
	iterations prometheus.Histogram
	finalNorm  prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "newton",
				Subsystem: "solver",
				Name:      "runs_total",
				Help:      "Total number of solver runs by terminal status.",
			},
			[]string{"status"},
		),
		iterations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "newton",
				Subsystem: "solver",
				Name:      "iterations",
				Help:      "Iterations completed per run.",
				Buckets:   prometheus.LinearBuckets(0, 1, 11),
			},
		),
		finalNorm: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "newton",
				Subsystem: "solver",
				Name:      "final_norm",
				Help:      "Step norm of the last converged run in input order.",
			},
		),
	}
	r.Registry.MustRegister(r.runs, r.iterations, r.finalNorm)

	return r
}

// Observe records a finished run. A nil Recorder ignores it.
func (r *Recorder) Observe(res system.Result) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(res.Status.String()).Inc()
	r.iterations.Observe(float64(res.Iterations))
}

// SetFinalNorm sets the gauge from the last converged result. results must
// be in input order: runs finish in any order when solved concurrently, so
// Observe leaves the gauge alone.
func (r *Recorder) SetFinalNorm(results []system.Result) {
	if r == nil {
		return
	}
	for i := len(results) - 1; i >= 0; i-- {
		res := results[i]
		if res.Status == system.Converged && !math.IsNaN(res.Norm) {
			r.finalNorm.Set(res.Norm)
			return
		}
	}
}

// WriteTextfile dumps the registry in the text exposition format, for the
// node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.Registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
