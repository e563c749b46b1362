package monitor

import (
	"strings"
	"testing"
	"time"

	"trends-dashboard/pkg/sheets"
)

func TestMonitorBuilder_RequiresCollaborators(t *testing.T) {
	_, err := NewMonitorBuilder().
		WithTopics([]Topic{bondi}).
		WithReferenceStart(time.Now()).
		Build()
	if err == nil {
		t.Fatal("Expected error without fetcher and writer")
	}
	if !strings.Contains(err.Error(), "trends fetcher is required") || !strings.Contains(err.Error(), "sheet writer is required") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestMonitorBuilder_ValidatesTopics(t *testing.T) {
	tests := []struct {
		name     string
		topics   []Topic
		expected string
	}{
		{"no topics", nil, "at least one topic is required"},
		{"duplicate names", []Topic{bondi, bondi}, "duplicate topic name: Bondi Beach"},
		{"missing keywords", []Topic{{Name: "Empty"}}, "topic Empty has no keywords"},
		{"blank name", []Topic{{Name: " ", Keywords: []string{"x"}}}, "topic #1 has no name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMonitorBuilder().
				WithTopics(tt.topics).
				WithFetcher(newStubFetcher()).
				WithWriter(sheets.NewWriter(sheets.NewMemoryBackend("x"))).
				WithReferenceStart(time.Now()).
				Build()
			if err == nil || !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("Expected error containing '%s', got %v", tt.expected, err)
			}
		})
	}
}

func TestMonitorBuilder_RejectsNegativePause(t *testing.T) {
	_, err := NewMonitorBuilder().
		WithTopics([]Topic{bondi}).
		WithFetcher(newStubFetcher()).
		WithWriter(sheets.NewWriter(sheets.NewMemoryBackend("x"))).
		WithReferenceStart(time.Now()).
		WithTopicPause(-time.Second).
		Build()
	if err == nil || !strings.Contains(err.Error(), "topic pause cannot be negative") {
		t.Errorf("Expected negative pause error, got %v", err)
	}
}

func TestMonitorBuilder_Defaults(t *testing.T) {
	m, err := NewMonitorBuilder().
		WithTopics([]Topic{bondi, crisis}).
		WithFetcher(newStubFetcher()).
		WithWriter(sheets.NewWriter(sheets.NewMemoryBackend("x"))).
		WithReferenceStart(time.Now()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if m.topicPause != DefaultTopicPause {
		t.Errorf("Expected default pause %s, got %s", DefaultTopicPause, m.topicPause)
	}
	if len(m.Topics()) != 2 || m.Topics()[0].Name != "Bondi Beach" {
		t.Errorf("Unexpected topics: %+v", m.Topics())
	}
	if bondi.RelatedTab() != "Bondi Beach - Related" {
		t.Errorf("Unexpected related tab name: %s", bondi.RelatedTab())
	}
}
