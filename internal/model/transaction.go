package model

import "time"

// Transaction is a single general-ledger row as delivered by the source.
type Transaction struct {
	Date         time.Time
	AccountKey   string
	TerritoryKey string
	Amount       float64
}

// ChartAccount is one chart-of-accounts entry. The chart carries its own
// category fields, independent of the per-statement structure mappings;
// KPI slicing and the transaction detail view read these.
type ChartAccount struct {
	AccountKey string
	Name       string
	Class      string
	SubClass   string
	SubClass2  string
}

// Territory maps a territory key to its region and country.
type Territory struct {
	TerritoryKey string
	Region       string
	Country      string
}

// CalendarDay maps a ledger date to its reporting year.
type CalendarDay struct {
	Date time.Time
	Year int
}

// Dataset is everything the data-source collaborator delivers: the ledger,
// the three dimension tables, and the three statement-structure mappings.
type Dataset struct {
	Ledger        []Transaction
	Accounts      []ChartAccount
	Territories   []Territory
	Calendar      []CalendarDay
	ProfitAndLoss []StructureEntry
	BalanceSheet  []StructureEntry
	CashFlow      []CashFlowMapping
}
