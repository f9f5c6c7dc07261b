package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sazfar/finrep/internal/common"
	"github.com/sazfar/finrep/internal/model"
)

// Aggregate builds a statement cross-tabulation: amounts summed over the
// selected hierarchy levels (rows) crossed with the comparison dimensions
// (columns; Year is always included). Levels group in their fixed
// hierarchy order regardless of selection order, and rows sort by the
// composite sort keys, ascending. With totals enabled a synthetic Total
// row and column are appended; callers must strip them before any further
// arithmetic.
func Aggregate(facts []model.Fact, levels []model.Level, compareBy []model.Dimension, withTotals bool) (*model.StatementTable, error) {
	levels = model.SortLevels(levels)
	if len(levels) == 0 {
		levels = model.DefaultDetail()
	}
	compareBy = model.NormalizeCompareBy(compareBy)

	for i := range facts {
		for _, l := range levels {
			if _, ok := facts[i].Hierarchy[l]; !ok {
				return nil, fmt.Errorf("%w: %s", common.ErrMissingLevel, l)
			}
		}
	}

	titles := make([]string, len(levels))
	for i, l := range levels {
		titles[i] = string(l)
	}

	rowFn := func(f *model.Fact) []model.HierarchyCell {
		cells := make([]model.HierarchyCell, len(levels))
		for i, l := range levels {
			cells[i] = f.Hierarchy[l]
		}
		return cells
	}

	return pivot(facts, rowFn, titles, compareBy, withTotals, nil), nil
}

// AggregateFlows pivots long-form cash-flow facts into the statement
// shape: (Type, SubType) rows crossed with the comparison dimensions,
// ordered by the sub-type sort key.
func AggregateFlows(facts []model.Fact, compareBy []model.Dimension) *model.StatementTable {
	compareBy = model.NormalizeCompareBy(compareBy)

	rowFn := func(f *model.Fact) []model.HierarchyCell {
		return []model.HierarchyCell{
			{Label: f.FlowType},
			f.FlowSubType,
		}
	}

	// The cash-flow statement orders rows by sub-type rank alone.
	return pivot(facts, rowFn, []string{"Type", "SubType"}, compareBy, false, []int{1})
}

// CumulativeByYear converts period flows into point-in-time balances: per
// (full hierarchy, region, country) group, amounts are summed per year and
// then accumulated in ascending year order. This runs before filtering so
// a balance always includes flows from prior, unselected years.
func CumulativeByYear(facts []model.Fact) ([]model.Fact, error) {
	type group struct {
		sums     map[int]float64
		template *model.Fact
	}

	groups := make(map[string]*group)
	order := make([]string, 0)

	for i := range facts {
		f := &facts[i]
		for _, l := range model.LevelOrder {
			if _, ok := f.Hierarchy[l]; !ok {
				return nil, fmt.Errorf("%w: %s", common.ErrMissingLevel, l)
			}
		}

		parts := make([]string, 0, len(model.LevelOrder)+2)
		for _, l := range model.LevelOrder {
			parts = append(parts, f.Hierarchy[l].ID())
		}
		parts = append(parts, f.Region, f.Country)
		key := strings.Join(parts, "\x1f")

		g, ok := groups[key]
		if !ok {
			g = &group{sums: make(map[int]float64), template: f}
			groups[key] = g
			order = append(order, key)
		}
		g.sums[f.Year] += f.Amount
	}

	out := make([]model.Fact, 0, len(facts))
	for _, key := range order {
		g := groups[key]

		years := make([]int, 0, len(g.sums))
		for y := range g.sums {
			years = append(years, y)
		}
		sort.Ints(years)

		balance := 0.0
		for _, y := range years {
			balance += g.sums[y]
			out = append(out, model.Fact{
				Hierarchy: g.template.Hierarchy,
				Region:    g.template.Region,
				Country:   g.template.Country,
				Year:      y,
				Amount:    balance,
			})
		}
	}
	return out, nil
}

// pivot is the shared cross-tabulation core. rowFn extracts the row cell
// tuple from a fact; sortBy lists the cell positions rows sort by (nil
// means the whole tuple, left to right).
func pivot(facts []model.Fact, rowFn func(*model.Fact) []model.HierarchyCell, titles []string, compareBy []model.Dimension, withTotals bool, sortBy []int) *model.StatementTable {
	type rowAgg struct {
		values map[string]float64
		cells  []model.HierarchyCell
	}

	rows := make(map[string]*rowAgg)
	rowIDs := make([]string, 0)
	cols := make(map[string]model.ColumnKey)

	for i := range facts {
		f := &facts[i]

		cells := rowFn(f)
		rid := cellsID(cells)

		col := make(model.ColumnKey, len(compareBy))
		for d, dim := range compareBy {
			col[d] = f.DimensionValue(dim)
		}
		cid := col.ID()

		r, ok := rows[rid]
		if !ok {
			r = &rowAgg{values: make(map[string]float64), cells: cells}
			rows[rid] = r
			rowIDs = append(rowIDs, rid)
		}
		r.values[cid] += f.Amount
		if _, ok := cols[cid]; !ok {
			cols[cid] = col
		}
	}

	columns := make([]model.ColumnKey, 0, len(cols))
	for _, c := range cols {
		columns = append(columns, c)
	}
	sort.Slice(columns, func(i, j int) bool {
		return compareColumns(columns[i], columns[j]) < 0
	})

	sort.Slice(rowIDs, func(i, j int) bool {
		a, b := rows[rowIDs[i]].cells, rows[rowIDs[j]].cells
		if sortBy == nil {
			return model.CompareCells(a, b) < 0
		}
		for _, p := range sortBy {
			if n := a[p].Compare(b[p]); n != 0 {
				return n < 0
			}
		}
		return false
	})

	t := &model.StatementTable{
		RowTitles:  titles,
		ColumnDims: compareBy,
		Columns:    columns,
		Rows:       make([]model.Row, 0, len(rowIDs)+1),
	}
	for _, rid := range rowIDs {
		t.Rows = append(t.Rows, model.Row{
			Cells:  rows[rid].cells,
			Values: rows[rid].values,
		})
	}

	if withTotals {
		addTotals(t)
	}
	return t
}

// addTotals appends the grand-total column and row.
func addTotals(t *model.StatementTable) {
	totalCol := model.ColumnKey{model.TotalLabel}
	totalColID := totalCol.ID()

	colTotals := make(map[string]float64, len(t.Columns))
	grand := 0.0
	for i := range t.Rows {
		rowTotal := 0.0
		for _, c := range t.Columns {
			if v, ok := t.Rows[i].Values[c.ID()]; ok {
				rowTotal += v
				colTotals[c.ID()] += v
			}
		}
		t.Rows[i].Values[totalColID] = rowTotal
		grand += rowTotal
	}

	totalValues := make(map[string]float64, len(t.Columns)+1)
	for _, c := range t.Columns {
		totalValues[c.ID()] = colTotals[c.ID()]
	}
	totalValues[totalColID] = grand

	t.Columns = append(t.Columns, totalCol)
	t.Rows = append(t.Rows, model.Row{
		Cells:   model.TotalRowCells(len(t.RowTitles)),
		Values:  totalValues,
		IsTotal: true,
	})
}

func cellsID(cells []model.HierarchyCell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.ID()
	}
	return strings.Join(parts, "\x1e")
}

func compareColumns(a, b model.ColumnKey) int {
	for i := range a {
		if i >= len(b) {
			return 1
		}
		if n := strings.Compare(a[i], b[i]); n != 0 {
			return n
		}
	}
	if len(a) < len(b) {
		return -1
	}
	return 0
}
