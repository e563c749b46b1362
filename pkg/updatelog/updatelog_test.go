package updatelog

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"trends-dashboard/pkg/sheets"
)

func sydney(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		t.Fatalf("Failed to load timezone: %v", err)
	}
	return loc
}

func TestBuild_AllTopicsOK(t *testing.T) {
	loc := sydney(t)
	now := time.Date(2025, 12, 15, 1, 2, 3, 0, time.UTC)
	start := time.Date(2025, 12, 14, 0, 0, 0, 0, loc)

	rows := Build(now, loc, start, []TopicStatus{
		{Name: "Bondi Beach", Keywords: []string{"Bondi shooting"}},
		{Name: "Crisis Support", Keywords: []string{"Lifeline", "Crisis support"}},
	})

	expected := [][]interface{}{
		{"Last Updated", "2025-12-15 12:02:03"},
		{"", ""},
		{"Topics Tracked", "Keywords", "Status"},
		{"Bondi Beach", "Bondi shooting", "OK"},
		{"Crisis Support", "Lifeline, Crisis support", "OK"},
		{"", ""},
		{"Sheets Structure", ""},
		{"- Traffic sheets", "Interest over time (since 2025-12-14 00:00)"},
		{"- Related sheets", "Top and rising related queries"},
	}
	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Expected %v, got %v", expected, rows)
	}
}

func TestBuild_FailedTopicAddsNote(t *testing.T) {
	loc := sydney(t)
	now := time.Date(2025, 12, 15, 1, 0, 0, 0, time.UTC)

	rows := Build(now, loc, now, []TopicStatus{
		{Name: "Bondi Beach", Keywords: []string{"Bondi shooting"}, Err: errors.New("rate limited")},
	})

	if got := rows[3][2]; got != "ERROR: rate limited" {
		t.Errorf("Expected 'ERROR: rate limited', got %v", got)
	}

	last := rows[len(rows)-1]
	if last[0] != "Note" || last[1] != "Failed topics retain their previous data" {
		t.Errorf("Expected trailing note, got %v", last)
	}
	if blank := rows[len(rows)-2]; blank[0] != "" {
		t.Errorf("Expected blank row before note, got %v", blank)
	}
}

func TestBuild_NoTopics(t *testing.T) {
	rows := Build(time.Now(), time.UTC, time.Now(), nil)
	if len(rows) != 7 {
		t.Errorf("Expected 7 rows, got %d", len(rows))
	}
}

func TestWriter_WriteReplacesLogTab(t *testing.T) {
	mb := sheets.NewMemoryBackend("Dashboard")
	mb.Seed(TabName, 20, 5, [][]interface{}{{"stale"}, {"stale"}, {"stale"}, {"stale"}, {"stale"}, {"stale"}, {"stale"}, {"stale"}, {"stale"}, {"stale"}, {"stale"}, {"stale"}})

	loc := sydney(t)
	now := time.Date(2025, 12, 15, 1, 0, 0, 0, time.UTC)
	w := NewWriter(sheets.NewWriter(mb), loc, now).WithClock(func() time.Time { return now })

	if err := w.Write(context.Background(), []TopicStatus{{Name: "Bondi Beach", Keywords: []string{"Bondi shooting"}}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	rows, cols, _ := mb.Size(TabName)
	if rows != MinRows || cols != sheets.DefaultColumns {
		t.Errorf("Expected log tab grown to %dx%d, got %dx%d", MinRows, sheets.DefaultColumns, rows, cols)
	}

	values := mb.Values(TabName)
	if len(values) != 8 {
		t.Fatalf("Expected 8 rows after rewrite, got %d: %v", len(values), values)
	}
	for _, row := range values {
		for _, v := range row {
			if v == "stale" {
				t.Fatalf("Expected stale content cleared, got %v", values)
			}
		}
	}
}

func TestWriter_WriteReturnsErrors(t *testing.T) {
	mb := sheets.NewMemoryBackend("Dashboard")
	mb.FailOn(sheets.OpAdd, TabName, errors.New("permission denied"))

	w := NewWriter(sheets.NewWriter(mb), time.UTC, time.Now())
	err := w.Write(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("Expected permission error, got %v", err)
	}
}
