package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "trends_dashboard"

// Topic result labels
const (
	ResultOK             = "ok"
	ResultFetchError     = "fetch_error"
	ResultNormalizeError = "normalize_error"
	ResultWriteError     = "write_error"
)

// RunMetrics collects the metrics of a single run on a private registry
type RunMetrics struct {
	registry      *prometheus.Registry
	topics        *prometheus.CounterVec
	fetchErrors   *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	logTabErrors  prometheus.Counter
	runDuration   prometheus.Gauge
	lastSuccess   prometheus.Gauge
}

func New() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		topics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "topics_total",
			Help:      "Topics processed in the run by result.",
		}, []string{"result"}),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Trend fetch failures by error kind.",
		}, []string{"kind"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of one topic fetch including the pause between calls.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		}),
		logTabErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "log_tab_errors_total",
			Help:      "Failures writing the update log tab.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run in which every topic succeeded.",
		}),
	}

	m.registry.MustRegister(
		m.topics,
		m.fetchErrors,
		m.fetchDuration,
		m.logTabErrors,
		m.runDuration,
		m.lastSuccess,
	)

	for _, result := range []string{ResultOK, ResultFetchError, ResultNormalizeError, ResultWriteError} {
		m.topics.WithLabelValues(result)
	}

	return m
}

// Registry exposes the collectors for inspection
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *RunMetrics) TopicResult(result string) {
	m.topics.WithLabelValues(result).Inc()
}

func (m *RunMetrics) FetchError(kind string) {
	m.fetchErrors.WithLabelValues(kind).Inc()
}

func (m *RunMetrics) ObserveFetch(d time.Duration) {
	m.fetchDuration.Observe(d.Seconds())
}

func (m *RunMetrics) LogTabFailed() {
	m.logTabErrors.Inc()
}

// Finish records the run duration, and the completion time when no topic failed
func (m *RunMetrics) Finish(end time.Time, duration time.Duration, failed int) {
	m.runDuration.Set(duration.Seconds())
	if failed == 0 {
		m.lastSuccess.Set(float64(end.Unix()))
	}
}

// Push sends the registry to a Prometheus Pushgateway under the given job
func (m *RunMetrics) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}
