package sheets

import (
	"context"
	"fmt"
	"sync"
)

// Operation names used with MemoryBackend.FailOn
const (
	OpAdd    = "add"
	OpResize = "resize"
	OpClear  = "clear"
	OpWrite  = "write"
)

type cellKey struct {
	row int
	col int
}

type memoryTab struct {
	tab    Tab
	cells  map[cellKey]interface{}
	clears int
	writes int
}

// MemoryBackend provides an in-memory spreadsheet for tests and dry runs
type MemoryBackend struct {
	mu       sync.RWMutex
	title    string
	tabs     map[string]*memoryTab
	order    []string
	nextID   int64
	failures map[string]error
}

// NewMemoryBackend creates an empty spreadsheet with the given title
func NewMemoryBackend(title string) *MemoryBackend {
	return &MemoryBackend{
		title:    title,
		tabs:     make(map[string]*memoryTab),
		failures: make(map[string]error),
	}
}

// FailOn makes the named operation on tab name return err
func (mb *MemoryBackend) FailOn(op, name string, err error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.failures[op+":"+name] = err
}

func (mb *MemoryBackend) failure(op, name string) error {
	return mb.failures[op+":"+name]
}

func (mb *MemoryBackend) Title() string {
	return mb.title
}

func (mb *MemoryBackend) Tab(ctx context.Context, name string) (*Tab, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	mt, exists := mb.tabs[name]
	if !exists {
		return nil, ErrTabNotFound
	}
	tab := mt.tab
	return &tab, nil
}

func (mb *MemoryBackend) AddTab(ctx context.Context, name string, rows, cols int64) (*Tab, error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if err := mb.failure(OpAdd, name); err != nil {
		return nil, err
	}
	if _, exists := mb.tabs[name]; exists {
		return nil, fmt.Errorf("tab already exists: %s", name)
	}

	mb.addLocked(name, rows, cols)
	tab := mb.tabs[name].tab
	return &tab, nil
}

func (mb *MemoryBackend) addLocked(name string, rows, cols int64) *memoryTab {
	mt := &memoryTab{
		tab:   Tab{ID: mb.nextID, Title: name, Rows: rows, Cols: cols},
		cells: make(map[cellKey]interface{}),
	}
	mb.nextID++
	mb.tabs[name] = mt
	mb.order = append(mb.order, name)
	return mt
}

func (mb *MemoryBackend) ResizeTab(ctx context.Context, tab *Tab, rows, cols int64) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if err := mb.failure(OpResize, tab.Title); err != nil {
		return err
	}
	mt, exists := mb.tabs[tab.Title]
	if !exists {
		return ErrTabNotFound
	}

	for key := range mt.cells {
		if int64(key.row) > rows || int64(key.col) > cols {
			delete(mt.cells, key)
		}
	}
	mt.tab.Rows = rows
	mt.tab.Cols = cols
	tab.Rows = rows
	tab.Cols = cols
	return nil
}

func (mb *MemoryBackend) ClearTab(ctx context.Context, tab *Tab) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if err := mb.failure(OpClear, tab.Title); err != nil {
		return err
	}
	mt, exists := mb.tabs[tab.Title]
	if !exists {
		return ErrTabNotFound
	}

	mt.cells = make(map[cellKey]interface{})
	mt.clears++
	return nil
}

func (mb *MemoryBackend) WriteRange(ctx context.Context, tab *Tab, row, col int, values [][]interface{}) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if err := mb.failure(OpWrite, tab.Title); err != nil {
		return err
	}
	mt, exists := mb.tabs[tab.Title]
	if !exists {
		return ErrTabNotFound
	}

	for i, r := range values {
		for j, v := range r {
			rr, cc := row+i, col+j
			if int64(rr) > mt.tab.Rows || int64(cc) > mt.tab.Cols {
				return fmt.Errorf("range exceeds grid limits: row %d col %d in %dx%d tab", rr, cc, mt.tab.Rows, mt.tab.Cols)
			}
			mt.cells[cellKey{rr, cc}] = v
		}
	}
	mt.writes++
	return nil
}

// Seed creates a tab of the given size holding values from A1
func (mb *MemoryBackend) Seed(name string, rows, cols int64, values [][]interface{}) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mt, exists := mb.tabs[name]
	if !exists {
		mt = mb.addLocked(name, rows, cols)
	}
	for i, r := range values {
		for j, v := range r {
			mt.cells[cellKey{i + 1, j + 1}] = v
		}
	}
}

// TabNames returns tab names in creation order
func (mb *MemoryBackend) TabNames() []string {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	return append([]string(nil), mb.order...)
}

// Size returns the grid size of a tab
func (mb *MemoryBackend) Size(name string) (rows, cols int64, ok bool) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	mt, exists := mb.tabs[name]
	if !exists {
		return 0, 0, false
	}
	return mt.tab.Rows, mt.tab.Cols, true
}

// Values returns the populated rows of a tab from A1.
// Gaps are filled with "" and trailing empty cells in each row are dropped.
func (mb *MemoryBackend) Values(name string) [][]interface{} {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	mt, exists := mb.tabs[name]
	if !exists {
		return nil
	}

	maxRow := 0
	lastCol := make(map[int]int)
	for key := range mt.cells {
		if key.row > maxRow {
			maxRow = key.row
		}
		if key.col > lastCol[key.row] {
			lastCol[key.row] = key.col
		}
	}

	rows := make([][]interface{}, maxRow)
	for r := 1; r <= maxRow; r++ {
		row := make([]interface{}, lastCol[r])
		for c := 1; c <= lastCol[r]; c++ {
			v, ok := mt.cells[cellKey{r, c}]
			if !ok {
				v = ""
			}
			row[c-1] = v
		}
		rows[r-1] = row
	}
	return rows
}

// Clears returns how many times the tab was cleared
func (mb *MemoryBackend) Clears(name string) int {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	if mt, exists := mb.tabs[name]; exists {
		return mt.clears
	}
	return 0
}

// Writes returns how many ranges were written to the tab
func (mb *MemoryBackend) Writes(name string) int {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	if mt, exists := mb.tabs[name]; exists {
		return mt.writes
	}
	return 0
}
