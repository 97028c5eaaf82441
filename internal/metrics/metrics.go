// Package metrics exposes scheduling results as Prometheus collectors on a
// private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/gridplan/internal/report"
	"github.com/specialistvlad/gridplan/internal/scheduler"
)

const namespace = "gridplan"

// Metrics holds the collectors of one process.
type Metrics struct {
	registry *prometheus.Registry

	RunsTotal         *prometheus.CounterVec
	TasksScheduled    prometheus.Counter
	TasksUnscheduled  *prometheus.CounterVec
	WorkflowSpan      prometheus.Histogram
	SchedulingSeconds prometheus.Histogram
}

// New registers the collectors, plus the Go and process collectors, on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "runs_total",
			Help:      "Scheduling runs, labelled by outcome and stall reason.",
		}, []string{"outcome", "reason"}),

		TasksScheduled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "tasks_scheduled_total",
			Help:      "Tasks placed on a worker.",
		}),

		TasksUnscheduled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "tasks_unscheduled_total",
			Help:      "Tasks left without a worker, labelled by stall reason.",
		}, []string{"reason"}),

		WorkflowSpan: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "workflow_span_ticks",
			Help:      "Workflow execution time in simulated ticks.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),

		SchedulingSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock time spent building and scheduling a plan.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
}

// Observe records one finished run.
func (m *Metrics) Observe(res *scheduler.Result, rep *report.Report, elapsed time.Duration) {
	reason := string(res.Reason)
	m.RunsTotal.WithLabelValues(res.Outcome.String(), reason).Inc()
	m.TasksScheduled.Add(float64(res.Scheduled))
	if n := len(res.Unscheduled); n > 0 {
		m.TasksUnscheduled.WithLabelValues(reason).Add(float64(n))
	}
	for _, w := range rep.Workflows {
		m.WorkflowSpan.Observe(float64(w.Span()))
	}
	m.SchedulingSeconds.Observe(elapsed.Seconds())
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
