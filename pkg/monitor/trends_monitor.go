package monitor

import (
	"context"
	"fmt"
	"time"

	"trends-dashboard/pkg/logger"
	"trends-dashboard/pkg/metrics"
	"trends-dashboard/pkg/normalize"
	"trends-dashboard/pkg/sheets"
	"trends-dashboard/pkg/trends"
	"trends-dashboard/pkg/updatelog"
)

// Row floors of the per-topic tabs
const (
	TrafficRows = 100
	RelatedRows = 200
)

// TrendsMonitor runs the fetch, normalize and write pipeline for every topic
// and finishes with the update log
type TrendsMonitor struct {
	topics         []Topic
	fetcher        trends.Fetcher
	writer         *sheets.Writer
	updateLog      *updatelog.Writer
	metrics        *metrics.RunMetrics
	location       *time.Location
	referenceStart time.Time
	topicPause     time.Duration
	sleep          func(time.Duration)
	now            func() time.Time
	log            *logger.Logger
}

// Topics returns the configured topics in processing order
func (m *TrendsMonitor) Topics() []Topic {
	return m.topics
}

// Run processes every topic in order. Per-topic failures are recorded in the
// outcome and never stop the run; the log tab is attempted exactly once.
func (m *TrendsMonitor) Run(ctx context.Context) *Outcome {
	outcome := newOutcome()

	m.log.WithFields(map[string]interface{}{
		"topics":          len(m.topics),
		"reference_start": m.referenceStart.Format(time.RFC3339),
	}).Info("Starting trends update")

	for i, topic := range m.topics {
		result := m.processTopic(ctx, topic)
		outcome.record(result)
		m.recordMetrics(result)

		if i < len(m.topics)-1 && m.topicPause > 0 {
			m.sleep(m.topicPause)
		}
	}

	if err := m.updateLog.Write(ctx, outcome.Statuses()); err != nil {
		outcome.LogErr = err
		if m.metrics != nil {
			m.metrics.LogTabFailed()
		}
	}

	m.log.WithFields(map[string]interface{}{
		"succeeded": outcome.Succeeded(),
		"failed":    outcome.Failed(),
	}).Info("Trends update finished")

	return outcome
}

func (m *TrendsMonitor) processTopic(ctx context.Context, topic Topic) TopicResult {
	log := m.log.WithFields(map[string]interface{}{
		"topic":    topic.Name,
		"keywords": topic.Keywords,
	})
	log.Info("Updating topic")

	window := trends.NewWindow(m.referenceStart, m.now())
	fetchStart := time.Now()
	data, err := m.fetcher.Fetch(ctx, topic.Keywords, window)
	if m.metrics != nil {
		m.metrics.ObserveFetch(time.Since(fetchStart))
	}
	if err != nil {
		// Recorded as-is so the log tab shows the provider's message
		log.WithError(err).WithField("kind", trends.KindOf(err).String()).Error("Failed to fetch trends")
		return TopicResult{Topic: topic, Stage: metrics.ResultFetchError, Err: err}
	}
	if data == nil {
		data = &trends.Result{}
	}

	interest, err := normalize.Interest(data.Interest, topic.Keywords, m.location)
	if err != nil {
		log.WithError(err).Error("Failed to normalize interest")
		return TopicResult{Topic: topic, Stage: metrics.ResultNormalizeError, Err: fmt.Errorf("normalize interest: %w", err)}
	}
	related := normalize.Related(data.Related, topic.Keywords)

	if err := m.writer.ReplaceTab(ctx, topic.TrafficTab(), TrafficRows, interest); err != nil {
		log.WithError(err).Error("Failed to write traffic tab")
		return TopicResult{Topic: topic, Stage: metrics.ResultWriteError, Err: err}
	}
	log.WithField("rows", interest.NumRows()).Info("Traffic tab updated")

	if err := m.writer.ReplaceTab(ctx, topic.RelatedTab(), RelatedRows, related); err != nil {
		log.WithError(err).Error("Failed to write related tab")
		return TopicResult{Topic: topic, Stage: metrics.ResultWriteError, Err: err}
	}
	log.WithField("rows", related.NumRows()).Info("Related tab updated")

	return TopicResult{Topic: topic, Stage: metrics.ResultOK}
}

func (m *TrendsMonitor) recordMetrics(result TopicResult) {
	if m.metrics == nil {
		return
	}
	m.metrics.TopicResult(result.Stage)
	if result.Stage == metrics.ResultFetchError {
		m.metrics.FetchError(trends.KindOf(result.Err).String())
	}
}
