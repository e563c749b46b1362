package updatelog

import (
	"context"
	"strings"
	"time"

	"trends-dashboard/pkg/logger"
	"trends-dashboard/pkg/sheets"
)

const (
	// TabName is the fixed name of the metadata tab
	TabName = "Update Log"
	// MinRows is the row floor of the metadata tab
	MinRows = 50

	StatusOK = "OK"

	TimeLayout  = "2006-01-02 15:04:05"
	SinceLayout = "2006-01-02 15:04"
)

// TopicStatus is one topic's line in the log tab. Err is nil on success.
type TopicStatus struct {
	Name     string
	Keywords []string
	Err      error
}

// Status renders "OK" or "ERROR: <message>"
func (s TopicStatus) Status() string {
	if s.Err == nil {
		return StatusOK
	}
	return "ERROR: " + s.Err.Error()
}

// Build lays out the log tab contents
func Build(now time.Time, loc *time.Location, referenceStart time.Time, statuses []TopicStatus) [][]interface{} {
	rows := [][]interface{}{
		{"Last Updated", now.In(loc).Format(TimeLayout)},
		{"", ""},
		{"Topics Tracked", "Keywords", "Status"},
	}

	failed := false
	for _, s := range statuses {
		if s.Err != nil {
			failed = true
		}
		rows = append(rows, []interface{}{s.Name, strings.Join(s.Keywords, ", "), s.Status()})
	}

	rows = append(rows,
		[]interface{}{"", ""},
		[]interface{}{"Sheets Structure", ""},
		[]interface{}{"- Traffic sheets", "Interest over time (since " + referenceStart.In(loc).Format(SinceLayout) + ")"},
		[]interface{}{"- Related sheets", "Top and rising related queries"},
	)

	if failed {
		rows = append(rows,
			[]interface{}{"", ""},
			[]interface{}{"Note", "Failed topics retain their previous data"},
		)
	}
	return rows
}

// Writer rewrites the log tab at the end of a run
type Writer struct {
	sheets         *sheets.Writer
	loc            *time.Location
	referenceStart time.Time
	now            func() time.Time
	log            *logger.Logger
}

func NewWriter(w *sheets.Writer, loc *time.Location, referenceStart time.Time) *Writer {
	return &Writer{
		sheets:         w,
		loc:            loc,
		referenceStart: referenceStart,
		now:            time.Now,
		log:            logger.GetLogger().WithField("component", "update_log"),
	}
}

// WithClock overrides the time source
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// Write replaces the log tab with the statuses of this run
func (w *Writer) Write(ctx context.Context, statuses []TopicStatus) error {
	rows := Build(w.now(), w.loc, w.referenceStart, statuses)
	if err := w.sheets.ReplaceValues(ctx, TabName, MinRows, rows); err != nil {
		w.log.WithError(err).Error("Failed to update log tab")
		return err
	}

	w.log.WithField("topics", len(statuses)).Info("Log tab updated")
	return nil
}
