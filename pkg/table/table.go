package table

import "fmt"

// Kind identifies what a Cell holds
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	default:
		return "absent"
	}
}

// Cell is a single strongly-typed table value
type Cell struct {
	kind Kind
	str  string
	num  int64
}

// String creates a string cell
func String(s string) Cell {
	return Cell{kind: KindString, str: s}
}

// Int creates an integer cell
func Int(n int64) Cell {
	return Cell{kind: KindInt, num: n}
}

// Absent creates an empty cell
func Absent() Cell {
	return Cell{}
}

func (c Cell) Kind() Kind { return c.kind }

// Str returns the string payload; empty for non-string cells
func (c Cell) Str() string { return c.str }

// Int returns the integer payload; zero for non-integer cells
func (c Cell) Int() int64 { return c.num }

// Value converts the cell to the form spreadsheet APIs expect
func (c Cell) Value() interface{} {
	switch c.kind {
	case KindString:
		return c.str
	case KindInt:
		return c.num
	default:
		return ""
	}
}

func (c Cell) String() string {
	switch c.kind {
	case KindString:
		return c.str
	case KindInt:
		return fmt.Sprintf("%d", c.num)
	default:
		return ""
	}
}

// Column is a named sequence of cells
type Column struct {
	Name  string
	Cells []Cell
}

// Table is an ordered set of equally long columns
type Table struct {
	columns []Column
}

// New creates an empty table with no columns
func New() *Table {
	return &Table{}
}

// AddColumn appends a column. All columns must have the same length.
func (t *Table) AddColumn(name string, cells []Cell) error {
	if len(t.columns) > 0 && len(cells) != t.NumRows() {
		return fmt.Errorf("column %q has %d cells, table has %d rows", name, len(cells), t.NumRows())
	}
	t.columns = append(t.columns, Column{Name: name, Cells: cells})
	return nil
}

// MustAddColumn is AddColumn for callers that construct columns of known length
func (t *Table) MustAddColumn(name string, cells []Cell) *Table {
	if err := t.AddColumn(name, cells); err != nil {
		panic(err)
	}
	return t
}

// Columns returns the columns in order
func (t *Table) Columns() []Column {
	return t.columns
}

// Column looks up a column by name
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Header returns column names in order
func (t *Table) Header() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

func (t *Table) NumColumns() int {
	return len(t.columns)
}

func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns[0].Cells)
}

// Row returns the cells of row i across all columns
func (t *Table) Row(i int) []Cell {
	row := make([]Cell, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Cells[i]
	}
	return row
}

// Values renders the header row followed by every data row
func (t *Table) Values() [][]interface{} {
	values := make([][]interface{}, 0, t.NumRows()+1)

	header := make([]interface{}, len(t.columns))
	for i, c := range t.columns {
		header[i] = c.Name
	}
	values = append(values, header)

	for i := 0; i < t.NumRows(); i++ {
		row := make([]interface{}, len(t.columns))
		for j, c := range t.columns {
			row[j] = c.Cells[i].Value()
		}
		values = append(values, row)
	}
	return values
}

// Message builds the single-column, single-row table used as a placeholder
func Message(text string) *Table {
	return New().MustAddColumn("Message", []Cell{String(text)})
}
