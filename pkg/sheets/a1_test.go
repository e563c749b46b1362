package sheets

import "testing"

func TestColumnLetters(t *testing.T) {
	tests := map[int]string{
		1:   "A",
		20:  "T",
		26:  "Z",
		27:  "AA",
		52:  "AZ",
		703: "AAA",
	}
	for col, expected := range tests {
		if got := columnLetters(col); got != expected {
			t.Errorf("columnLetters(%d): expected %s, got %s", col, expected, got)
		}
	}
}

func TestCellRange(t *testing.T) {
	tests := []struct {
		title    string
		row, col int
		expected string
	}{
		{"Bondi Beach", 1, 1, "'Bondi Beach'!A1"},
		{"Crisis Support - Related", 3, 2, "'Crisis Support - Related'!B3"},
		{"Sam's Topic", 1, 1, "'Sam''s Topic'!A1"},
	}
	for _, tt := range tests {
		if got := cellRange(tt.title, tt.row, tt.col); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}
