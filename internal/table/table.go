// Package table holds the in-memory output table and the pure view
// transforms the presentation layer offers: column reorder/removal, sorting,
// text filtering and row selection. Every transform returns a new Table and
// never mutates its receiver, so a view can always be rebuilt from the
// original extraction result.
package table

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Table is an ordered sequence of rows plus the column header sequence.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// New creates an empty table with the given column header.
func New(columns []string) *Table {
	return &Table{
		Columns: append([]string(nil), columns...),
		Rows:    [][]string{},
	}
}

// Append adds a row. Short rows are padded, long rows truncated, so every
// row always matches the header width.
func (t *Table) Append(row []string) {
	fixed := make([]string, len(t.Columns))
	copy(fixed, row)
	t.Rows = append(t.Rows, fixed)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := New(t.Columns)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// SelectColumns returns a view containing the named columns in the given
// order. Column names not present in the table are ignored; an empty
// selection yields a table with no columns and no row cells.
func (t *Table) SelectColumns(columns []string) *Table {
	indices := make([]int, 0, len(columns))
	kept := make([]string, 0, len(columns))
	for _, name := range columns {
		if idx := t.columnIndex(name); idx >= 0 {
			indices = append(indices, idx)
			kept = append(kept, t.Columns[idx])
		}
	}

	out := New(kept)
	for _, row := range t.Rows {
		projected := make([]string, len(indices))
		for i, idx := range indices {
			projected[i] = row[idx]
		}
		out.Rows = append(out.Rows, projected)
	}
	return out
}

// SortBy returns a view sorted by the named column. Values that parse as
// numbers (after stripping currency noise) compare numerically, everything
// else lexicographically; the sort is stable so equal keys keep their
// relative input order. An unknown column returns an unsorted copy.
func (t *Table) SortBy(column string, descending bool) *Table {
	out := t.Clone()
	idx := t.columnIndex(column)
	if idx < 0 {
		return out
	}

	sort.SliceStable(out.Rows, func(i, j int) bool {
		less := compareValues(out.Rows[i][idx], out.Rows[j][idx])
		if descending {
			return less > 0
		}
		return less < 0
	})
	return out
}

// SortByNumber returns a view sorted by the first integer embedded in the
// named column's values ("PO12345" sorts as 12345). Rows without a number
// sort first, preserving their relative order.
func (t *Table) SortByNumber(column string) *Table {
	out := t.Clone()
	idx := t.columnIndex(column)
	if idx < 0 {
		return out
	}

	sort.SliceStable(out.Rows, func(i, j int) bool {
		a, aOK := embeddedNumber(out.Rows[i][idx])
		b, bOK := embeddedNumber(out.Rows[j][idx])
		switch {
		case !aOK && !bOK:
			return false
		case !aOK:
			return true
		case !bOK:
			return false
		default:
			return a < b
		}
	})
	return out
}

// Filter returns a view keeping only rows where any cell contains the query,
// case-insensitively. An empty query keeps every row.
func (t *Table) Filter(query string) *Table {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return t.Clone()
	}

	out := New(t.Columns)
	for _, row := range t.Rows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), query) {
				out.Rows = append(out.Rows, append([]string(nil), row...))
				break
			}
		}
	}
	return out
}

// SelectRows returns a view containing the rows at the given indices, in the
// given order. Out-of-range indices are ignored.
func (t *Table) SelectRows(indices []int) *Table {
	out := New(t.Columns)
	for _, idx := range indices {
		if idx < 0 || idx >= len(t.Rows) {
			continue
		}
		out.Rows = append(out.Rows, append([]string(nil), t.Rows[idx]...))
	}
	return out
}

func (t *Table) columnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

var numberRe = regexp.MustCompile(`-?\d+`)

// compareValues orders two cell values, numerically when both parse.
func compareValues(a, b string) int {
	av, aErr := strconv.ParseFloat(strings.TrimSpace(a), 64)
	bv, bErr := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if aErr == nil && bErr == nil {
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// embeddedNumber extracts the first integer in a value.
func embeddedNumber(v string) (int64, bool) {
	m := numberRe.FindString(v)
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
