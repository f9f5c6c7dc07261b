package report

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/sazfar/finrep/internal/model"
)

// JoinResult is a denormalized fact table plus data-quality counters.
type JoinResult struct {
	Facts []model.Fact

	// Dropped counts ledger rows excluded because their account has no
	// mapping in the requested statement structure. Exclusion is the
	// intended inner-join semantics, but the count is surfaced for
	// data-quality visibility.
	Dropped int
}

const dateKeyFormat = "2006-01-02"

// joiner holds the dimension lookups shared by all statement joins.
type joiner struct {
	accounts    map[string]model.ChartAccount
	territories map[string]model.Territory
	calendar    map[string]int
}

func newJoiner(ds *model.Dataset) *joiner {
	j := &joiner{
		accounts:    make(map[string]model.ChartAccount, len(ds.Accounts)),
		territories: make(map[string]model.Territory, len(ds.Territories)),
		calendar:    make(map[string]int, len(ds.Calendar)),
	}
	for _, a := range ds.Accounts {
		j.accounts[a.AccountKey] = a
	}
	for _, t := range ds.Territories {
		j.territories[t.TerritoryKey] = t
	}
	for _, d := range ds.Calendar {
		j.calendar[d.Date.Format(dateKeyFormat)] = d.Year
	}
	return j
}

// baseFact left-joins one transaction against the dimension tables.
// Unmatched dimensions yield empty fields, never dropped rows. The year
// comes from the calendar, falling back to the transaction date itself.
func (j *joiner) baseFact(txn model.Transaction) model.Fact {
	f := model.Fact{
		Date:         txn.Date,
		AccountKey:   txn.AccountKey,
		TerritoryKey: txn.TerritoryKey,
		Amount:       txn.Amount,
	}

	if a, ok := j.accounts[txn.AccountKey]; ok {
		f.AccountName = a.Name
		f.Class = a.Class
		f.SubClass = a.SubClass
		f.SubClass2 = a.SubClass2
	}
	if t, ok := j.territories[txn.TerritoryKey]; ok {
		f.Region = t.Region
		f.Country = t.Country
	}
	if y, ok := j.calendar[txn.Date.Format(dateKeyFormat)]; ok {
		f.Year = y
	} else {
		f.Year = txn.Date.Year()
	}

	return f
}

// JoinBase denormalizes the ledger against the dimension tables only,
// without any statement structure. This is the transaction detail view
// and the input for chart-of-accounts KPI slicing.
func JoinBase(ds *model.Dataset) []model.Fact {
	j := newJoiner(ds)
	facts := make([]model.Fact, 0, len(ds.Ledger))
	for _, txn := range ds.Ledger {
		facts = append(facts, j.baseFact(txn))
	}
	return facts
}

// Join builds the denormalized fact table for one statement: dimension
// left joins plus an inner join on account key against that statement's
// structure table. It runs once per statement kind; an account can map
// differently, or not at all, into each statement.
func Join(ds *model.Dataset, kind model.StatementKind) (*JoinResult, error) {
	if kind == model.StatementCashFlow {
		return joinCashFlow(ds)
	}

	structure := ds.ProfitAndLoss
	if kind == model.StatementBalanceSheet {
		structure = ds.BalanceSheet
	}

	entries := make(map[string]model.StructureEntry, len(structure))
	for _, e := range structure {
		if _, dup := entries[e.AccountKey]; dup {
			slog.Warn("duplicate structure mapping ignored",
				"statement", kind, "account_key", e.AccountKey)
			continue
		}
		entries[e.AccountKey] = e
	}

	j := newJoiner(ds)
	result := &JoinResult{Facts: make([]model.Fact, 0, len(ds.Ledger))}

	for _, txn := range ds.Ledger {
		entry, ok := entries[txn.AccountKey]
		if !ok {
			result.Dropped++
			continue
		}

		cells, err := Cells(entry)
		if err != nil {
			return nil, fmt.Errorf("joining %s structure: %w", kind, err)
		}

		f := j.baseFact(txn)
		f.Hierarchy = cells
		result.Facts = append(result.Facts, f)
	}

	logDropped(kind, result.Dropped, len(ds.Ledger))
	return result, nil
}

func joinCashFlow(ds *model.Dataset) (*JoinResult, error) {
	mappings := make(map[string]model.CashFlowMapping, len(ds.CashFlow))
	for _, m := range ds.CashFlow {
		if _, dup := mappings[m.AccountKey]; dup {
			slog.Warn("duplicate structure mapping ignored",
				"statement", model.StatementCashFlow, "account_key", m.AccountKey)
			continue
		}
		mappings[m.AccountKey] = m
	}

	j := newJoiner(ds)
	result := &JoinResult{Facts: make([]model.Fact, 0, len(ds.Ledger))}

	for _, txn := range ds.Ledger {
		m, ok := mappings[txn.AccountKey]
		if !ok {
			result.Dropped++
			continue
		}

		cell, err := SubTypeCell(m)
		if err != nil {
			return nil, fmt.Errorf("joining %s structure: %w", model.StatementCashFlow, err)
		}

		f := j.baseFact(txn)
		f.FlowType = m.Type
		f.FlowSubType = cell
		f.ValueType = m.ValueType
		f.FlowAccount = m.Account
		f.Sign = model.SignOf(txn.Amount)
		result.Facts = append(result.Facts, f)
	}

	logDropped(model.StatementCashFlow, result.Dropped, len(ds.Ledger))
	return result, nil
}

func logDropped(kind model.StatementKind, dropped, total int) {
	if dropped == 0 {
		return
	}
	slog.Warn("ledger rows without structure mapping excluded",
		"statement", kind,
		"dropped", dropped,
		"total", total)
}

// YearsOf returns the distinct years present in the facts, ascending.
func YearsOf(facts []model.Fact) []int {
	seen := make(map[int]bool)
	years := make([]int, 0, 8)
	for i := range facts {
		if !seen[facts[i].Year] {
			seen[facts[i].Year] = true
			years = append(years, facts[i].Year)
		}
	}
	sort.Ints(years)
	return years
}
