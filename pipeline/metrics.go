package pipeline

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "tlog"

// Metrics records pipeline runs in a private registry so it can be written
// as a node-exporter textfile.
type Metrics struct {
	registry *prometheus.Registry

	runs          *prometheus.CounterVec
	commits       prometheus.Counter
	storyWrites   prometheus.Counter
	storyRemovals prometheus.Counter

	duration   prometheus.Gauge
	lastRun    prometheus.Gauge
	candidates prometheus.Gauge
	sprint     prometheus.Gauge
	scheduled  prometheus.Gauge
	resolved   prometheus.Gauge
}

// NewMetrics creates the pipeline metrics in a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "commits_total",
			Help:      "Git commits made by pipeline runs.",
		}),
		storyWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "story_writes_total",
			Help:      "Tasks written back to story files.",
		}),
		storyRemovals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "story_removals_total",
			Help:      "Resolved tasks removed from story files.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last pipeline run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last pipeline run finished.",
		}),
		candidates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "sprint_candidates",
			Help:      "Story tasks eligible for the last sprint.",
		}),
		sprint: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "sprint_tasks",
			Help:      "Tasks in the to do section of the last blotter.",
		}),
		scheduled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "scheduled_tasks",
			Help:      "Tasks in the scheduled section of the last blotter.",
		}),
		resolved: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "resolved_tasks",
			Help:      "Tasks in the resolved file of the last run.",
		}),
	}
	m.registry.MustRegister(
		m.runs, m.commits, m.storyWrites, m.storyRemovals,
		m.duration, m.lastRun, m.candidates, m.sprint, m.scheduled, m.resolved,
	)
	return m
}

// Registry returns the registry holding the pipeline metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes the metrics in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func (m *Metrics) observe(res *Result, err error) {
	if err != nil {
		m.runs.WithLabelValues("error").Inc()
		return
	}
	m.runs.WithLabelValues("success").Inc()
	m.commits.Add(float64(len(res.Commits)))
	m.storyWrites.Add(float64(res.StoryWrites))
	m.storyRemovals.Add(float64(res.StoryRemovals))
	m.candidates.Set(float64(res.Candidates))
	m.sprint.Set(float64(res.SprintTasks))
	m.scheduled.Set(float64(res.Scheduled))
	m.resolved.Set(float64(res.Resolved))
}
