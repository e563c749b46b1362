package normalize

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"trends-dashboard/pkg/table"
	"trends-dashboard/pkg/trends"
)

func sydney(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		t.Fatalf("Expected Australia/Sydney to load, got: %v", err)
	}
	return loc
}

func rawValues(values ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(values))
	for i, v := range values {
		out[i] = json.RawMessage(v)
	}
	return out
}

func TestInterest_EmptyTableYieldsPlaceholder(t *testing.T) {
	keywordSets := [][]string{nil, {"Bondi shooting"}, {"Lifeline", "Crisis support"}}

	for _, keywords := range keywordSets {
		for _, raw := range []*trends.InterestTable{nil, {}} {
			tbl, err := Interest(raw, keywords, sydney(t))
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}

			if tbl.NumRows() != 1 || tbl.NumColumns() != 1 {
				t.Fatalf("Expected 1x1 placeholder, got %dx%d", tbl.NumRows(), tbl.NumColumns())
			}
			col, ok := tbl.Column("Message")
			if !ok || col.Cells[0].Str() != NoInterestMessage {
				t.Errorf("Unexpected placeholder for keywords %v: %v", keywords, tbl.Values())
			}
		}
	}
}

func TestInterest_SingleSampleSydney(t *testing.T) {
	raw := &trends.InterestTable{
		Index: []string{"2025-12-14T04:00:00"},
		Columns: []trends.InterestColumn{
			{Name: "Bondi shooting", Values: rawValues("37")},
			{Name: "isPartial", Values: rawValues("false")},
		},
	}

	tbl, err := Interest(raw, []string{"Bondi shooting"}, sydney(t))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	header := tbl.Header()
	if len(header) != 2 || header[0] != "Timestamp" || header[1] != "Bondi shooting" {
		t.Fatalf("Unexpected header: %v", header)
	}

	values := tbl.Values()
	if len(values) != 2 {
		t.Fatalf("Expected header + 1 row, got %d rows", len(values))
	}
	if values[1][0] != "2025-12-14 15:00" {
		t.Errorf("Expected '2025-12-14 15:00', got: %v", values[1][0])
	}
	if values[1][1] != int64(37) {
		t.Errorf("Expected 37, got: %#v", values[1][1])
	}
}

func TestInterest_ValueCoercion(t *testing.T) {
	raw := &trends.InterestTable{
		Index: []string{
			"2025-12-14T04:00:00Z",
			"2025-12-14T05:00:00Z",
			"2025-12-14T06:00:00Z",
			"2025-12-14T07:00:00Z",
			"2025-12-14T08:00:00Z",
			"2025-12-14T09:00:00Z",
		},
		Columns: []trends.InterestColumn{
			{Name: "Lifeline", Values: rawValues(`"<1"`, `null`, `"2025-12-14 04:00:00"`, `42.9`, `-3`, `"18"`)},
			{Name: "Crisis support", Values: rawValues(`5`, `true`)},
		},
	}

	tbl, err := Interest(raw, []string{"Lifeline", "Crisis support"}, time.UTC)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	lifeline, _ := tbl.Column("Lifeline")
	expected := []int64{0, 0, 0, 42, 0, 18}
	for i, want := range expected {
		cell := lifeline.Cells[i]
		if cell.Kind() != table.KindInt {
			t.Errorf("Row %d: expected int cell, got %s", i, cell.Kind())
		}
		if cell.Int() != want {
			t.Errorf("Row %d: expected %d, got %d", i, want, cell.Int())
		}
	}

	crisis, _ := tbl.Column("Crisis support")
	expectedCrisis := []int64{5, 1, 0, 0, 0, 0}
	for i, want := range expectedCrisis {
		if crisis.Cells[i].Int() != want {
			t.Errorf("Row %d: expected %d, got %d", i, want, crisis.Cells[i].Int())
		}
	}
}

func TestInterest_AllValueColumnsIntegerAndNonNegative(t *testing.T) {
	raw := &trends.InterestTable{
		Index: []string{"2025-12-14T04:00:00", "2025-12-14T05:00:00"},
		Columns: []trends.InterestColumn{
			{Name: "a", Values: rawValues(`"abc"`, `{"x":1}`)},
			{Name: "b", Values: rawValues(`[1]`, `1e400`)},
			{Name: "isPartial", Values: rawValues(`false`, `true`)},
		},
	}

	tbl, err := Interest(raw, nil, time.UTC)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for _, col := range tbl.Columns()[1:] {
		if col.Name == PartialColumn {
			t.Fatal("Expected isPartial column to be dropped")
		}
		for i, cell := range col.Cells {
			if cell.Kind() != table.KindInt || cell.Int() < 0 {
				t.Errorf("Column %s row %d: expected non-negative int, got %s %v", col.Name, i, cell.Kind(), cell)
			}
		}
	}
}

func TestInterest_MissingKeywordColumnIsZero(t *testing.T) {
	raw := &trends.InterestTable{
		Index:   []string{"2025-12-14T04:00:00"},
		Columns: []trends.InterestColumn{{Name: "Lifeline", Values: rawValues(`12`)}},
	}

	tbl, err := Interest(raw, []string{"Lifeline", "Crisis support"}, time.UTC)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	header := tbl.Header()
	if len(header) != 3 || header[2] != "Crisis support" {
		t.Fatalf("Unexpected header: %v", header)
	}

	col, _ := tbl.Column("Crisis support")
	if col.Cells[0].Int() != 0 {
		t.Errorf("Expected 0 for missing keyword, got %d", col.Cells[0].Int())
	}
}

func TestInterest_BadTimestamp(t *testing.T) {
	raw := &trends.InterestTable{
		Index:   []string{"yesterday"},
		Columns: []trends.InterestColumn{{Name: "Lifeline", Values: rawValues(`12`)}},
	}

	if _, err := Interest(raw, nil, time.UTC); err == nil {
		t.Fatal("Expected error for unparseable timestamp, got nil")
	}
}

func TestParseTimestamp(t *testing.T) {
	expected := time.Date(2025, 12, 14, 4, 0, 0, 0, time.UTC)

	inputs := []string{
		"2025-12-14T04:00:00",
		"2025-12-14 04:00:00",
		"2025-12-14T04:00",
		"2025-12-14T04:00:00Z",
		"2025-12-14T15:00:00+11:00",
		"1765684800",
	}

	for _, input := range inputs {
		ts, err := ParseTimestamp(input)
		if err != nil {
			t.Errorf("For input %q, expected no error, got: %v", input, err)
			continue
		}
		if !ts.Equal(expected) {
			t.Errorf("For input %q, expected %s, got %s", input, expected, ts)
		}
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{`37`, 37},
		{`100.0`, 100},
		{`"55"`, 55},
		{`"<1"`, 0},
		{`""`, 0},
		{`null`, 0},
		{``, 0},
		{`false`, 0},
		{`"2025-12-14T04:00:00Z"`, 0},
		{`-1`, 0},
		{`"NaN"`, 0},
	}

	for _, test := range tests {
		result := CoerceInt(json.RawMessage(test.input))
		if result != test.expected {
			t.Errorf("For input '%s', expected %d, got %d", test.input, test.expected, result)
		}
	}
}
