package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded for a scheduling run.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeDryRun  = "dry_run"
)

// SchedulerMetrics holds the Prometheus collectors for scheduling runs on a
// private registry. A nil *SchedulerMetrics records nothing.
type SchedulerMetrics struct {
	registry    *prometheus.Registry
	handler     http.Handler
	runs        *prometheus.CounterVec
	assigned    prometheus.Counter
	unscheduled *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewSchedulerMetrics registers the scheduler collectors.
func NewSchedulerMetrics() *SchedulerMetrics {
	registry := prometheus.NewRegistry()

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskmaster",
		Subsystem: "scheduler",
		Name:      "runs_total",
		Help:      "Scheduling runs by outcome",
	}, []string{"outcome"})

	assigned := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "taskmaster",
		Subsystem: "scheduler",
		Name:      "tasks_assigned_total",
		Help:      "Tasks given a start and end time",
	})

	unscheduled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskmaster",
		Subsystem: "scheduler",
		Name:      "tasks_unscheduled_total",
		Help:      "Tasks left without a slot, by reason",
	}, []string{"reason"})

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "taskmaster",
		Subsystem: "scheduler",
		Name:      "run_duration_seconds",
		Help:      "Duration of scheduling runs",
		Buckets:   prometheus.DefBuckets,
	})

	registry.MustRegister(runs, assigned, unscheduled, duration)

	return &SchedulerMetrics{
		registry:    registry,
		handler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		runs:        runs,
		assigned:    assigned,
		unscheduled: unscheduled,
		duration:    duration,
	}
}

// Registry returns the private registry.
func (m *SchedulerMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the metrics in Prometheus text format.
func (m *SchedulerMetrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveRun records one scheduling run.
func (m *SchedulerMetrics) ObserveRun(outcome string, assigned int, unscheduledReasons []string, duration time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.assigned.Add(float64(assigned))
	for _, reason := range unscheduledReasons {
		m.unscheduled.WithLabelValues(reason).Inc()
	}
	m.duration.Observe(duration.Seconds())
}
