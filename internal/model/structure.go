package model

// RankMissing marks a hierarchy level with no rank in the structure table.
// A transaction resolving to such a level is a data-integrity error.
const RankMissing = -1

// LevelMapping positions an account within one hierarchy level of a
// statement: the category name, its display rank, and an optional
// calculated-line name used when the entry is flagged as calculated.
type LevelMapping struct {
	Name           string
	CalculatedName string
	Rank           int
}

// StructureEntry maps an account key into one statement's hierarchy.
// P&L and Balance Sheet structures share this shape.
type StructureEntry struct {
	AccountKey   string
	Levels       map[Level]LevelMapping
	IsCalculated bool
}

// CashFlowMapping maps an account key into the cash-flow statement.
// Unlike the other structures it is keyed by type/sub-type rather than
// the four-level class hierarchy, and carries the value-type policy that
// drives the rollforward.
type CashFlowMapping struct {
	AccountKey     string
	Type           string
	SubType        string
	CalculatedName string
	Account        string
	ValueType      ValueType
	SubTypeRank    int
	IsCalculated   bool
}
