package model

import "time"

// Fact is one denormalized ledger row after the dimension and structure
// joins. Chart-of-accounts category fields are carried raw; the per-level
// Hierarchy cells come from the statement structure and carry the display
// ordering. Cash-flow facts populate the flow fields instead of Hierarchy.
type Fact struct {
	Date         time.Time
	AccountKey   string
	TerritoryKey string
	Amount       float64
	Year         int

	// Left-joined dimensions; empty when unmatched.
	Region      string
	Country     string
	AccountName string
	Class       string
	SubClass    string
	SubClass2   string

	// Statement-structure hierarchy (P&L and Balance Sheet).
	Hierarchy map[Level]HierarchyCell

	// Cash-flow structure fields.
	FlowType    string
	FlowSubType HierarchyCell
	ValueType   ValueType
	Sign        Sign
	FlowAccount string
}

// DimensionValue returns the fact's value for a comparison dimension.
func (f *Fact) DimensionValue(d Dimension) string {
	switch d {
	case DimensionRegion:
		return f.Region
	case DimensionCountry:
		return f.Country
	case DimensionYear:
		return FormatYear(f.Year)
	}
	return ""
}
