// Package metrics exposes render statistics in the Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/diogo/mdlive/internal/preview"
)

// Recorder implements preview.Recorder on its own registry, so several
// recorders (one per test, say) never collide on metric names.
type Recorder struct {
	registry *prometheus.Registry

	renders  *prometheus.CounterVec
	duration prometheus.Histogram
	blocks   prometheus.Counter
}

var _ preview.Recorder = (*Recorder)(nil)

// New creates a Recorder with Go runtime and process collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mdlive_renders_total",
				Help: "Completed render passes by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mdlive_render_duration_seconds",
				Help:    "Duration of render passes, highlighting included",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
		),
		blocks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mdlive_highlighted_blocks_total",
				Help: "Code blocks passed to the highlighter",
			},
		),
	}

	r.registry.MustRegister(
		r.renders,
		r.duration,
		r.blocks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// ObserveRender records one render pass.
func (r *Recorder) ObserveRender(outcome preview.Outcome, elapsed time.Duration, blocks int) {
	r.renders.WithLabelValues(string(outcome)).Inc()
	r.duration.Observe(elapsed.Seconds())
	if blocks > 0 {
		r.blocks.Add(float64(blocks))
	}
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
