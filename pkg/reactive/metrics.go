package reactive

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// engineMetrics holds the Prometheus instruments for one engine.
// A nil *engineMetrics is valid and records nothing.
type engineMetrics struct {
	effectRuns    prometheus.Counter
	triggers      prometheus.Counter
	flushes       prometheus.Counter
	flushDuration prometheus.Histogram
}

func newEngineMetrics(reg prometheus.Registerer) *engineMetrics {
	factory := promauto.With(reg)
	return &engineMetrics{
		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "weft",
			Subsystem: "reactive",
			Name:      "effect_runs_total",
			Help:      "Total number of effect body executions.",
		}),
		triggers: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "weft",
			Subsystem: "reactive",
			Name:      "triggers_total",
			Help:      "Total number of (target, key) triggers with subscribers.",
		}),
		flushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "weft",
			Subsystem: "reactive",
			Name:      "flushes_total",
			Help:      "Total number of scheduler flushes.",
		}),
		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weft",
			Subsystem: "reactive",
			Name:      "flush_duration_seconds",
			Help:      "Wall time spent draining the scheduler queue.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *engineMetrics) countEffectRun() {
	if m != nil {
		m.effectRuns.Inc()
	}
}

func (m *engineMetrics) countTrigger() {
	if m != nil {
		m.triggers.Inc()
	}
}

func (m *engineMetrics) countFlush() {
	if m != nil {
		m.flushes.Inc()
	}
}

func (m *engineMetrics) observeFlushDuration(d time.Duration) {
	if m != nil {
		m.flushDuration.Observe(d.Seconds())
	}
}
