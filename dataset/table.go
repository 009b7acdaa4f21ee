package dataset

import (
	"strconv"

	"github.com/hungtranvg62/mlproject/apperr"
)

// Table is an immutable in-memory view of a delimited-text dataset:
// ordered named columns over row-major string cells. Missing values are
// the empty string, "NA" or "NaN", the conventions of the raw files.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// IsMissing reports whether a cell counts as a missing value.
func IsMissing(cell string) bool {
	return cell == "" || cell == "NA" || cell == "NaN"
}

// NewTable builds a table from a header and rows. Every row must have
// exactly one cell per column.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	if len(columns) == 0 {
		return nil, apperr.New(apperr.KindData, "table has no columns")
	}
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; dup {
			return nil, apperr.New(apperr.KindData, "duplicate column %q", name)
		}
		index[name] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, apperr.New(apperr.KindData, "row %d has %d cells, expected %d", i, len(row), len(columns))
		}
	}
	return &Table{columns: columns, index: index, rows: rows}, nil
}

func (t *Table) NumRows() int { return len(t.rows) }

func (t *Table) NumCols() int { return len(t.columns) }

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether name exists in the table.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the cells of the named column.
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.index[name]
	if !ok {
		return nil, apperr.New(apperr.KindData, "unknown column %q", name)
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Select returns a new table restricted to the named columns, in the
// given order.
func (t *Table) Select(names []string) (*Table, error) {
	indices := make([]int, len(names))
	for i, name := range names {
		idx, ok := t.index[name]
		if !ok {
			return nil, apperr.New(apperr.KindData, "unknown column %q", name)
		}
		indices[i] = idx
	}
	rows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		cells := make([]string, len(indices))
		for j, idx := range indices {
			cells[j] = row[idx]
		}
		rows[i] = cells
	}
	cols := make([]string, len(names))
	copy(cols, names)
	return &Table{columns: cols, index: buildIndex(cols), rows: rows}, nil
}

// Drop returns a new table without the named column.
func (t *Table) Drop(name string) (*Table, error) {
	if _, ok := t.index[name]; !ok {
		return nil, apperr.New(apperr.KindData, "unknown column %q", name)
	}
	kept := make([]string, 0, len(t.columns)-1)
	for _, col := range t.columns {
		if col != name {
			kept = append(kept, col)
		}
	}
	return t.Select(kept)
}

// SplitTarget separates the target column from the feature columns. The
// target must be fully populated and numeric.
func (t *Table) SplitTarget(target string) (*Table, []float64, error) {
	cells, err := t.Column(target)
	if err != nil {
		return nil, nil, err
	}
	values := make([]float64, len(cells))
	for i, cell := range cells {
		if IsMissing(cell) {
			return nil, nil, apperr.New(apperr.KindData, "target column %q has a missing value at row %d", target, i)
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, nil, apperr.Wrap(apperr.KindData, err, "target column %q has non-numeric value %q at row %d", target, cell, i)
		}
		values[i] = v
	}
	features, err := t.Drop(target)
	if err != nil {
		return nil, nil, err
	}
	return features, values, nil
}

func buildIndex(columns []string) map[string]int {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		index[name] = i
	}
	return index
}
