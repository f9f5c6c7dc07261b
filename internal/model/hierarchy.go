package model

import "strings"

// HierarchyCell pairs the machine-sortable key with the human-readable
// label for one hierarchy level of one statement row. The two are kept as
// separate fields: SortKey is an opaque zero-padded rank used only for
// ordering and grouping, Label is plain display text.
type HierarchyCell struct {
	SortKey string
	Label   string
}

// Compare orders cells by sort key, then label, as plain text.
func (c HierarchyCell) Compare(o HierarchyCell) int {
	if n := strings.Compare(c.SortKey, o.SortKey); n != 0 {
		return n
	}
	return strings.Compare(c.Label, o.Label)
}

// ID returns a stable grouping key for the cell.
func (c HierarchyCell) ID() string {
	return c.SortKey + "\x1f" + c.Label
}

// CompareCells orders two cell tuples lexicographically by position.
func CompareCells(a, b []HierarchyCell) int {
	for i := range a {
		if i >= len(b) {
			return 1
		}
		if n := a[i].Compare(b[i]); n != 0 {
			return n
		}
	}
	if len(a) < len(b) {
		return -1
	}
	return 0
}
