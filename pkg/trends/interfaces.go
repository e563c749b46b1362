package trends

import (
	"context"
	"encoding/json"
	"time"
)

// Window is the fetch time range, sent to the provider at hourly granularity
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds the window [start, now]
func NewWindow(start, now time.Time) Window {
	return Window{Start: start, End: now}
}

// Timeframe renders the window as the provider's hourly UTC range, e.g.
// "2025-12-14T04 2025-12-15T10"
func (w Window) Timeframe() string {
	const hourly = "2006-01-02T15"
	return w.Start.UTC().Truncate(time.Hour).Format(hourly) + " " + w.End.UTC().Truncate(time.Hour).Format(hourly)
}

// InterestTable is the provider's time-indexed interest table. Values are raw
// JSON scalars exactly as the provider sent them.
type InterestTable struct {
	Index   []string         `json:"index"`
	Columns []InterestColumn `json:"columns"`
}

// InterestColumn holds one provider column (a keyword or the partial flag)
type InterestColumn struct {
	Name   string            `json:"name"`
	Values []json.RawMessage `json:"values"`
}

// IsEmpty reports whether the provider returned no samples
func (t *InterestTable) IsEmpty() bool {
	return t == nil || len(t.Index) == 0
}

// RankedQuery is one row of a top or rising related-query list
type RankedQuery struct {
	Query *string         `json:"query"`
	Value json.RawMessage `json:"value"`
}

// KeywordRelated holds the related-query lists for one keyword; either may be nil
type KeywordRelated struct {
	Top    []RankedQuery `json:"top"`
	Rising []RankedQuery `json:"rising"`
}

// RelatedQueries maps keyword to its related-query bundle
type RelatedQueries map[string]KeywordRelated

// Result is everything fetched for one topic
type Result struct {
	Interest *InterestTable
	Related  RelatedQueries
}

// Fetcher retrieves trends data for a keyword set
type Fetcher interface {
	Fetch(ctx context.Context, keywords []string, window Window) (*Result, error)
}
