package sheets

import (
	"context"
	"errors"
)

// ErrTabNotFound is returned by Backend.Tab when no tab has the exact name
var ErrTabNotFound = errors.New("tab not found")

// Tab identifies a tab and its current grid size
type Tab struct {
	ID    int64
	Title string
	Rows  int64
	Cols  int64
}

// Backend is the set of spreadsheet operations the writer needs
type Backend interface {
	// Title returns the spreadsheet title
	Title() string
	// Tab looks up a tab by exact name
	Tab(ctx context.Context, name string) (*Tab, error)
	// AddTab creates a tab with the given grid size
	AddTab(ctx context.Context, name string, rows, cols int64) (*Tab, error)
	// ResizeTab sets the grid size of tab and updates it in place
	ResizeTab(ctx context.Context, tab *Tab, rows, cols int64) error
	// ClearTab removes every value in tab
	ClearTab(ctx context.Context, tab *Tab) error
	// WriteRange writes values with their top-left corner at the 1-based row and col
	WriteRange(ctx context.Context, tab *Tab, row, col int, values [][]interface{}) error
}
