package sheets

import (
	"context"
	"fmt"

	sheetsv4 "google.golang.org/api/sheets/v4"
	"trends-dashboard/pkg/logger"
)

// GoogleBackend talks to one spreadsheet through the Sheets API v4.
// Tab metadata is read once at open and kept current by this backend's own
// writes; concurrent editors are not tracked.
type GoogleBackend struct {
	srv   *sheetsv4.Service
	id    string
	title string
	tabs  map[string]*Tab
	log   *logger.Logger
}

// OpenGoogle opens the spreadsheet by ID and loads its tab list
func OpenGoogle(ctx context.Context, srv *sheetsv4.Service, spreadsheetID string) (*GoogleBackend, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}

	ss, err := srv.Spreadsheets.Get(spreadsheetID).
		Fields("properties.title", "sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}

	b := &GoogleBackend{
		srv:  srv,
		id:   spreadsheetID,
		tabs: make(map[string]*Tab, len(ss.Sheets)),
		log:  logger.GetLogger().WithField("component", "google_sheets"),
	}
	if ss.Properties != nil {
		b.title = ss.Properties.Title
	}
	for _, sheet := range ss.Sheets {
		if sheet.Properties == nil {
			continue
		}
		tab := tabFromProperties(sheet.Properties)
		b.tabs[tab.Title] = tab
	}

	b.log.WithField("tabs", len(b.tabs)).Debug("Spreadsheet opened")
	return b, nil
}

func tabFromProperties(p *sheetsv4.SheetProperties) *Tab {
	tab := &Tab{ID: p.SheetId, Title: p.Title}
	if p.GridProperties != nil {
		tab.Rows = p.GridProperties.RowCount
		tab.Cols = p.GridProperties.ColumnCount
	}
	return tab
}

func (b *GoogleBackend) Title() string {
	return b.title
}

func (b *GoogleBackend) Tab(ctx context.Context, name string) (*Tab, error) {
	tab, ok := b.tabs[name]
	if !ok {
		return nil, ErrTabNotFound
	}
	return tab, nil
}

func (b *GoogleBackend) AddTab(ctx context.Context, name string, rows, cols int64) (*Tab, error) {
	resp, err := b.srv.Spreadsheets.BatchUpdate(b.id, &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			AddSheet: &sheetsv4.AddSheetRequest{
				Properties: &sheetsv4.SheetProperties{
					Title: name,
					GridProperties: &sheetsv4.GridProperties{
						RowCount:    rows,
						ColumnCount: cols,
					},
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to add tab: %w", err)
	}

	tab := &Tab{Title: name, Rows: rows, Cols: cols}
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		tab = tabFromProperties(resp.Replies[0].AddSheet.Properties)
	}
	b.tabs[tab.Title] = tab
	return tab, nil
}

func (b *GoogleBackend) ResizeTab(ctx context.Context, tab *Tab, rows, cols int64) error {
	_, err := b.srv.Spreadsheets.BatchUpdate(b.id, &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			UpdateSheetProperties: &sheetsv4.UpdateSheetPropertiesRequest{
				Properties: &sheetsv4.SheetProperties{
					SheetId: tab.ID,
					GridProperties: &sheetsv4.GridProperties{
						RowCount:    rows,
						ColumnCount: cols,
					},
				},
				Fields: "gridProperties(rowCount,columnCount)",
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to resize tab: %w", err)
	}

	tab.Rows = rows
	tab.Cols = cols
	return nil
}

func (b *GoogleBackend) ClearTab(ctx context.Context, tab *Tab) error {
	_, err := b.srv.Spreadsheets.Values.
		Clear(b.id, quoteTitle(tab.Title), &sheetsv4.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear tab: %w", err)
	}
	return nil
}

func (b *GoogleBackend) WriteRange(ctx context.Context, tab *Tab, row, col int, values [][]interface{}) error {
	_, err := b.srv.Spreadsheets.Values.
		Update(b.id, cellRange(tab.Title, row, col), &sheetsv4.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write values: %w", err)
	}
	return nil
}
