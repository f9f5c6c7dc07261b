// Package report implements the statement reporting pipeline: joining the
// ledger to its dimensions and statement structures, filtering, hierarchy
// ordering, aggregation, the cash-flow rollforward, and KPI metrics.
package report

import (
	"fmt"

	"github.com/sazfar/finrep/internal/common"
	"github.com/sazfar/finrep/internal/model"
)

// PadRank renders a structure rank as a plain-text sortable key,
// zero-padded to at least two digits.
func PadRank(rank int) string {
	return fmt.Sprintf("%02d", rank)
}

// Cell derives the sort/display cell for one hierarchy level of a
// structure entry. The sort key is the zero-padded rank; the label is the
// category name, or the structure-supplied calculated name when the entry
// is a calculated line such as Gross Profit.
func Cell(entry model.StructureEntry, level model.Level) (model.HierarchyCell, error) {
	m, ok := entry.Levels[level]
	if !ok || m.Rank == model.RankMissing {
		return model.HierarchyCell{}, fmt.Errorf("%w: account %q level %s",
			common.ErrMissingRank, entry.AccountKey, level)
	}

	label := m.Name
	if entry.IsCalculated && m.CalculatedName != "" {
		label = m.CalculatedName
	}

	return model.HierarchyCell{SortKey: PadRank(m.Rank), Label: label}, nil
}

// Cells derives cells for every hierarchy level of a structure entry.
func Cells(entry model.StructureEntry) (map[model.Level]model.HierarchyCell, error) {
	out := make(map[model.Level]model.HierarchyCell, len(model.LevelOrder))
	for _, level := range model.LevelOrder {
		cell, err := Cell(entry, level)
		if err != nil {
			return nil, err
		}
		out[level] = cell
	}
	return out, nil
}

// SubTypeCell derives the sort/display cell for a cash-flow mapping's
// sub-type, the only ranked level of the cash-flow structure.
func SubTypeCell(m model.CashFlowMapping) (model.HierarchyCell, error) {
	if m.SubTypeRank == model.RankMissing {
		return model.HierarchyCell{}, fmt.Errorf("%w: account %q sub-type %q",
			common.ErrMissingRank, m.AccountKey, m.SubType)
	}

	label := m.SubType
	if m.IsCalculated && m.CalculatedName != "" {
		label = m.CalculatedName
	}

	return model.HierarchyCell{SortKey: PadRank(m.SubTypeRank), Label: label}, nil
}
