package model

import (
	"strconv"
	"strings"
)

// TotalLabel names the synthetic grand-total row and column.
const TotalLabel = "Total"

// totalSortKey sorts the synthetic total row after every real row; real
// sort keys are zero-padded digits, which compare below '~'.
const totalSortKey = "~"

// FormatYear renders a year for use as a column value.
func FormatYear(year int) string {
	return strconv.Itoa(year)
}

// ColumnKey identifies one statement column: one value per comparison
// dimension, in the table's dimension order.
type ColumnKey []string

// ID returns a stable map key for the column.
func (k ColumnKey) ID() string {
	return strings.Join(k, "\x1f")
}

// String renders the column header.
func (k ColumnKey) String() string {
	return strings.Join(k, " / ")
}

// IsTotal reports whether this is the synthetic grand-total column.
func (k ColumnKey) IsTotal() bool {
	return len(k) == 1 && k[0] == TotalLabel
}

// Row is one statement row: its hierarchy cells and one summed value per
// populated column. Missing columns mean no data, not zero.
type Row struct {
	Values  map[string]float64
	Cells   []HierarchyCell
	IsTotal bool
}

// TotalRowCells builds the cell tuple for a synthetic total row spanning
// the given number of row levels.
func TotalRowCells(width int) []HierarchyCell {
	cells := make([]HierarchyCell, width)
	for i := range cells {
		cells[i] = HierarchyCell{SortKey: totalSortKey, Label: TotalLabel}
	}
	return cells
}

// StatementTable is an aggregated statement view: rows keyed by an ordered
// tuple of hierarchy cells, columns keyed by the comparison dimensions.
type StatementTable struct {
	RowTitles  []string
	ColumnDims []Dimension
	Columns    []ColumnKey
	Rows       []Row

	// Percent marks ratio tables whose values render as percentages.
	Percent bool
}

// Value returns the cell at (row, column), reporting presence.
func (t *StatementTable) Value(row int, col ColumnKey) (float64, bool) {
	v, ok := t.Rows[row].Values[col.ID()]
	return v, ok
}

// TotalRow returns the synthetic grand-total row, if present.
func (t *StatementTable) TotalRow() (Row, bool) {
	for _, r := range t.Rows {
		if r.IsTotal {
			return r, true
		}
	}
	return Row{}, false
}

// StripTotalRow removes the synthetic grand-total row. Totals are
// presentation artifacts and must never feed downstream arithmetic.
func (t *StatementTable) StripTotalRow() {
	rows := t.Rows[:0]
	for _, r := range t.Rows {
		if !r.IsTotal {
			rows = append(rows, r)
		}
	}
	t.Rows = rows
}

// StripTotalColumn removes the synthetic grand-total column and its values.
func (t *StatementTable) StripTotalColumn() {
	cols := t.Columns[:0]
	for _, c := range t.Columns {
		if c.IsTotal() {
			for i := range t.Rows {
				delete(t.Rows[i].Values, c.ID())
			}
			continue
		}
		cols = append(cols, c)
	}
	t.Columns = cols
}

// StripTotals removes both the grand-total row and column.
func (t *StatementTable) StripTotals() {
	t.StripTotalRow()
	t.StripTotalColumn()
}
