// Package model defines the core domain models used throughout the application.
package model

// Level identifies one tier of the statement category hierarchy.
type Level string

// Hierarchy levels, from coarsest to finest.
const (
	LevelClass     Level = "Class"
	LevelSubClass  Level = "SubClass"
	LevelSubClass2 Level = "SubClass2"
	LevelAccount   Level = "Account"
)

// LevelOrder is the fixed relative ordering of hierarchy levels. Statement
// rows are always grouped Class before SubClass before SubClass2 before
// Account, regardless of the order the user selected them in.
var LevelOrder = []Level{LevelClass, LevelSubClass, LevelSubClass2, LevelAccount}

// ParseLevel converts a user-supplied string into a Level.
func ParseLevel(s string) (Level, bool) {
	for _, l := range LevelOrder {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// SortLevels returns the given levels in canonical hierarchy order,
// with duplicates removed.
func SortLevels(levels []Level) []Level {
	out := make([]Level, 0, len(levels))
	for _, canonical := range LevelOrder {
		for _, l := range levels {
			if l == canonical {
				out = append(out, canonical)
				break
			}
		}
	}
	return out
}

// DefaultDetail is the level of detail used when the user selects none.
func DefaultDetail() []Level {
	return []Level{LevelClass, LevelSubClass, LevelSubClass2}
}

// Dimension is a comparison axis for statement columns.
type Dimension string

// Comparison dimensions. Year is always present on the column axis;
// Region and Country are optional.
const (
	DimensionRegion  Dimension = "Region"
	DimensionCountry Dimension = "Country"
	DimensionYear    Dimension = "Year"
)

// ParseDimension converts a user-supplied string into a Dimension.
func ParseDimension(s string) (Dimension, bool) {
	switch Dimension(s) {
	case DimensionRegion, DimensionCountry, DimensionYear:
		return Dimension(s), true
	}
	return "", false
}

// NormalizeCompareBy returns the comparison dimensions with Year appended
// if not already present, preserving the Region/Country selection order.
func NormalizeCompareBy(dims []Dimension) []Dimension {
	out := make([]Dimension, 0, len(dims)+1)
	hasYear := false
	for _, d := range dims {
		if d == DimensionYear {
			hasYear = true
		}
		out = append(out, d)
	}
	if !hasYear {
		out = append(out, DimensionYear)
	}
	return out
}

// StatementKind identifies one of the three financial statements.
type StatementKind string

// Statement kinds.
const (
	StatementProfitAndLoss StatementKind = "pnl"
	StatementBalanceSheet  StatementKind = "balance-sheet"
	StatementCashFlow      StatementKind = "cash-flow"
)
