package sheets

import (
	"context"
	"errors"
	"fmt"

	"trends-dashboard/pkg/logger"
	"trends-dashboard/pkg/table"
)

// DefaultColumns is the column count given to tabs created or grown by the writer
const DefaultColumns = 20

// Writer keeps tabs at a minimum size and replaces their contents
type Writer struct {
	backend Backend
	columns int64
	log     *logger.Logger
}

func NewWriter(backend Backend) *Writer {
	return &Writer{
		backend: backend,
		columns: DefaultColumns,
		log:     logger.GetLogger().WithField("component", "sheet_writer"),
	}
}

// Backend returns the spreadsheet the writer targets
func (w *Writer) Backend() Backend {
	return w.backend
}

// EnsureTab returns the named tab, creating it with minRows rows when missing
// or growing it to at least minRows. A tab is never shrunk.
func (w *Writer) EnsureTab(ctx context.Context, name string, minRows int64) (*Tab, error) {
	return w.ensure(ctx, name, minRows, w.columns)
}

func (w *Writer) ensure(ctx context.Context, name string, minRows, minCols int64) (*Tab, error) {
	tab, err := w.backend.Tab(ctx, name)
	if errors.Is(err, ErrTabNotFound) {
		w.log.WithFields(map[string]interface{}{
			"tab":  name,
			"rows": minRows,
			"cols": minCols,
		}).Info("Creating tab")
		return w.backend.AddTab(ctx, name, minRows, minCols)
	}
	if err != nil {
		return nil, err
	}

	if tab.Rows >= minRows && tab.Cols >= minCols {
		return tab, nil
	}

	rows, cols := max(tab.Rows, minRows), max(tab.Cols, minCols)
	w.log.WithFields(map[string]interface{}{
		"tab":       name,
		"from_rows": tab.Rows,
		"to_rows":   rows,
		"to_cols":   cols,
	}).Debug("Growing tab")
	if err := w.backend.ResizeTab(ctx, tab, rows, cols); err != nil {
		return nil, err
	}
	return tab, nil
}

// Write clears the tab and writes the table's header and rows at the anchor cell
func (w *Writer) Write(ctx context.Context, tab *Tab, t *table.Table, anchorRow, anchorCol int) error {
	return w.WriteValues(ctx, tab, t.Values(), anchorRow, anchorCol)
}

// WriteValues clears the tab and writes values at the anchor cell,
// growing the grid first when values would overflow it
func (w *Writer) WriteValues(ctx context.Context, tab *Tab, values [][]interface{}, anchorRow, anchorCol int) error {
	if anchorRow < 1 {
		anchorRow = 1
	}
	if anchorCol < 1 {
		anchorCol = 1
	}

	width := 0
	for _, row := range values {
		width = max(width, len(row))
	}
	needRows := int64(anchorRow - 1 + len(values))
	needCols := int64(anchorCol - 1 + width)
	if needRows > tab.Rows || needCols > tab.Cols {
		if err := w.backend.ResizeTab(ctx, tab, max(tab.Rows, needRows), max(tab.Cols, needCols)); err != nil {
			return err
		}
	}

	if err := w.backend.ClearTab(ctx, tab); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	return w.backend.WriteRange(ctx, tab, anchorRow, anchorCol, values)
}

// ReplaceTab ensures the named tab and overwrites it with t from A1
func (w *Writer) ReplaceTab(ctx context.Context, name string, minRows int64, t *table.Table) error {
	return w.ReplaceValues(ctx, name, minRows, t.Values())
}

// ReplaceValues ensures the named tab and overwrites it with values from A1
func (w *Writer) ReplaceValues(ctx context.Context, name string, minRows int64, values [][]interface{}) error {
	tab, err := w.EnsureTab(ctx, name, minRows)
	if err != nil {
		return fmt.Errorf("write tab %q: %w", name, err)
	}
	if err := w.WriteValues(ctx, tab, values, 1, 1); err != nil {
		return fmt.Errorf("write tab %q: %w", name, err)
	}

	w.log.WithFields(map[string]interface{}{
		"tab":  name,
		"rows": len(values),
	}).Debug("Tab written")
	return nil
}
