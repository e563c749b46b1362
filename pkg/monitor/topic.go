package monitor

import (
	"errors"

	"trends-dashboard/pkg/updatelog"
)

// RelatedSuffix is appended to a topic name to form its related-queries tab
const RelatedSuffix = " - Related"

// Topic is a named group of keywords tracked together
type Topic struct {
	Name        string
	Keywords    []string
	Description string
}

// TrafficTab is the tab holding the topic's interest over time
func (t Topic) TrafficTab() string {
	return t.Name
}

// RelatedTab is the tab holding the topic's related queries
func (t Topic) RelatedTab() string {
	return t.Name + RelatedSuffix
}

// TopicResult is the outcome of processing one topic
type TopicResult struct {
	Topic Topic
	// Stage is the metrics result label: ok, fetch_error, normalize_error or write_error
	Stage string
	Err   error
}

func (r TopicResult) Success() bool {
	return r.Err == nil
}

// Outcome records per-topic results in processing order
type Outcome struct {
	results []TopicResult
	index   map[string]int
	// LogErr is set when the log tab could not be written
	LogErr error
}

func newOutcome() *Outcome {
	return &Outcome{index: make(map[string]int)}
}

func (o *Outcome) record(r TopicResult) {
	o.index[r.Topic.Name] = len(o.results)
	o.results = append(o.results, r)
}

// Results returns results in processing order
func (o *Outcome) Results() []TopicResult {
	return o.results
}

// Lookup returns the result recorded for a topic
func (o *Outcome) Lookup(name string) (TopicResult, bool) {
	i, ok := o.index[name]
	if !ok {
		return TopicResult{}, false
	}
	return o.results[i], true
}

// Message returns the recorded error text for a topic, empty on success
func (o *Outcome) Message(name string) string {
	if r, ok := o.Lookup(name); ok && r.Err != nil {
		return r.Err.Error()
	}
	return ""
}

func (o *Outcome) Succeeded() int {
	n := 0
	for _, r := range o.results {
		if r.Success() {
			n++
		}
	}
	return n
}

func (o *Outcome) Failed() int {
	return len(o.results) - o.Succeeded()
}

// Statuses converts the results into log tab rows
func (o *Outcome) Statuses() []updatelog.TopicStatus {
	statuses := make([]updatelog.TopicStatus, len(o.results))
	for i, r := range o.results {
		statuses[i] = updatelog.TopicStatus{
			Name:     r.Topic.Name,
			Keywords: r.Topic.Keywords,
			Err:      r.Err,
		}
	}
	return statuses
}

// Error joins every per-topic failure, nil when all topics succeeded
func (o *Outcome) Error() error {
	var errs []error
	for _, r := range o.results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
