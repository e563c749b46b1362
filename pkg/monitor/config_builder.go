package monitor

import (
	"fmt"
	"strings"
	"time"

	"trends-dashboard/pkg/logger"
	"trends-dashboard/pkg/metrics"
	"trends-dashboard/pkg/sheets"
	"trends-dashboard/pkg/trends"
	"trends-dashboard/pkg/updatelog"
)

// DefaultTopicPause is the pause between consecutive topics
const DefaultTopicPause = 2 * time.Second

// MonitorBuilder assembles a TrendsMonitor, collecting validation errors
// until Build
type MonitorBuilder struct {
	topics         []Topic
	fetcher        trends.Fetcher
	writer         *sheets.Writer
	metrics        *metrics.RunMetrics
	location       *time.Location
	referenceStart time.Time
	topicPause     time.Duration
	sleep          func(time.Duration)
	now            func() time.Time
	log            *logger.Logger
	errors         []error
}

func NewMonitorBuilder() *MonitorBuilder {
	return &MonitorBuilder{
		location:   time.UTC,
		topicPause: DefaultTopicPause,
		sleep:      time.Sleep,
		now:        time.Now,
		errors:     make([]error, 0),
	}
}

// WithTopics sets the topics in processing order
func (b *MonitorBuilder) WithTopics(topics []Topic) *MonitorBuilder {
	if len(topics) == 0 {
		b.errors = append(b.errors, fmt.Errorf("at least one topic is required"))
		return b
	}

	seen := make(map[string]bool, len(topics))
	for i, topic := range topics {
		name := strings.TrimSpace(topic.Name)
		if name == "" {
			b.errors = append(b.errors, fmt.Errorf("topic #%d has no name", i+1))
			continue
		}
		if seen[name] {
			b.errors = append(b.errors, fmt.Errorf("duplicate topic name: %s", name))
			continue
		}
		seen[name] = true
		if len(topic.Keywords) == 0 {
			b.errors = append(b.errors, fmt.Errorf("topic %s has no keywords", name))
		}
	}

	b.topics = topics
	return b
}

func (b *MonitorBuilder) WithFetcher(fetcher trends.Fetcher) *MonitorBuilder {
	if fetcher == nil {
		b.errors = append(b.errors, fmt.Errorf("trends fetcher cannot be nil"))
		return b
	}
	b.fetcher = fetcher
	return b
}

func (b *MonitorBuilder) WithWriter(writer *sheets.Writer) *MonitorBuilder {
	if writer == nil {
		b.errors = append(b.errors, fmt.Errorf("sheet writer cannot be nil"))
		return b
	}
	b.writer = writer
	return b
}

// WithMetrics enables run metrics
func (b *MonitorBuilder) WithMetrics(m *metrics.RunMetrics) *MonitorBuilder {
	b.metrics = m
	return b
}

// WithLocation sets the zone timestamps are displayed in
func (b *MonitorBuilder) WithLocation(loc *time.Location) *MonitorBuilder {
	if loc == nil {
		b.errors = append(b.errors, fmt.Errorf("location cannot be nil"))
		return b
	}
	b.location = loc
	return b
}

// WithReferenceStart sets the lower bound of every fetch window
func (b *MonitorBuilder) WithReferenceStart(start time.Time) *MonitorBuilder {
	if start.IsZero() {
		b.errors = append(b.errors, fmt.Errorf("reference start cannot be zero"))
		return b
	}
	b.referenceStart = start
	return b
}

func (b *MonitorBuilder) WithTopicPause(pause time.Duration) *MonitorBuilder {
	if pause < 0 {
		b.errors = append(b.errors, fmt.Errorf("topic pause cannot be negative: %s", pause))
		return b
	}
	b.topicPause = pause
	return b
}

// WithSleeper replaces the blocking sleep used between topics
func (b *MonitorBuilder) WithSleeper(sleep func(time.Duration)) *MonitorBuilder {
	b.sleep = sleep
	return b
}

// WithClock replaces the time source for fetch windows and the log tab
func (b *MonitorBuilder) WithClock(now func() time.Time) *MonitorBuilder {
	b.now = now
	return b
}

func (b *MonitorBuilder) WithLogger(log *logger.Logger) *MonitorBuilder {
	b.log = log
	return b
}

// Build validates the collected settings and returns the monitor
func (b *MonitorBuilder) Build() (*TrendsMonitor, error) {
	if b.fetcher == nil {
		b.errors = append(b.errors, fmt.Errorf("trends fetcher is required"))
	}
	if b.writer == nil {
		b.errors = append(b.errors, fmt.Errorf("sheet writer is required"))
	}
	if len(b.topics) == 0 && len(b.errors) == 0 {
		b.errors = append(b.errors, fmt.Errorf("at least one topic is required"))
	}
	if b.referenceStart.IsZero() && len(b.errors) == 0 {
		b.errors = append(b.errors, fmt.Errorf("reference start is required"))
	}

	if len(b.errors) > 0 {
		messages := make([]string, len(b.errors))
		for i, err := range b.errors {
			messages[i] = err.Error()
		}
		return nil, fmt.Errorf("monitor configuration invalid: %s", strings.Join(messages, "; "))
	}

	log := b.log
	if log == nil {
		log = logger.GetLogger()
	}
	log = log.WithField("component", "trends_monitor")

	return &TrendsMonitor{
		topics:         b.topics,
		fetcher:        b.fetcher,
		writer:         b.writer,
		updateLog:      updatelog.NewWriter(b.writer, b.location, b.referenceStart).WithClock(b.now),
		metrics:        b.metrics,
		location:       b.location,
		referenceStart: b.referenceStart,
		topicPause:     b.topicPause,
		sleep:          b.sleep,
		now:            b.now,
		log:            log,
	}, nil
}
