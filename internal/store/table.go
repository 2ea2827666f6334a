// AngelaMos | 2026
// table.go

package store

import "slices"

// Table is an ordered tabular dataset: a header row plus data rows. It is
// the in-memory form of one CSV file and round-trips through Load/Save
// without column reordering.
type Table struct {
	Columns []string
	Rows    [][]string
}

func NewTable(columns []string) *Table {
	return &Table{Columns: slices.Clone(columns), Rows: [][]string{}}
}

func (t *Table) ColumnIndex(name string) int {
	return slices.Index(t.Columns, name)
}

func (t *Table) Get(row int, column string) string {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

func (t *Table) Set(row int, column, value string) {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return
	}
	t.Rows[row][idx] = value
}

// AppendRow adds a row built from a column->value map; columns absent from
// the map default to the empty string.
func (t *Table) AppendRow(values map[string]string) {
	row := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		row[i] = values[col]
	}
	t.Rows = append(t.Rows, row)
}

// Normalize pads short rows and backfills any canonical column the header is
// missing, appending new columns after the existing ones so stored column
// order stays observable. Applying it twice yields the same table as once.
func (t *Table) Normalize(canonical []string) {
	if len(t.Columns) == 0 {
		t.Columns = slices.Clone(canonical)
	} else {
		for _, col := range canonical {
			if t.ColumnIndex(col) < 0 {
				t.Columns = append(t.Columns, col)
			}
		}
	}

	for i, row := range t.Rows {
		for len(row) < len(t.Columns) {
			row = append(row, "")
		}
		t.Rows[i] = row[:len(t.Columns)]
	}
}

func (t *Table) Clone() *Table {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = slices.Clone(row)
	}
	return &Table{Columns: slices.Clone(t.Columns), Rows: rows}
}
