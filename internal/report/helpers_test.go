package report

import (
	"time"

	"github.com/sazfar/finrep/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func structureEntry(accountKey string, classRank int, class string, calculated bool) model.StructureEntry {
	return model.StructureEntry{
		AccountKey:   accountKey,
		IsCalculated: calculated,
		Levels: map[model.Level]model.LevelMapping{
			model.LevelClass:     {Name: class, Rank: classRank},
			model.LevelSubClass:  {Name: class + " / sub", Rank: classRank},
			model.LevelSubClass2: {Name: class + " / sub2", Rank: classRank},
			model.LevelAccount:   {Name: class + " / account", Rank: classRank},
		},
	}
}

// testDataset builds a two-account ledger: account 1001 maps to Revenue
// (rank 1), account 2001 to Expenses (rank 2), with activity in 2020 and
// 2021 across two territories.
func testDataset() *model.Dataset {
	return &model.Dataset{
		Ledger: []model.Transaction{
			{Date: date(2020, 3, 15), AccountKey: "1001", TerritoryKey: "T1", Amount: 600},
			{Date: date(2021, 2, 10), AccountKey: "1001", TerritoryKey: "T1", Amount: 400},
			{Date: date(2021, 6, 20), AccountKey: "1001", TerritoryKey: "T2", Amount: 600},
			{Date: date(2020, 5, 1), AccountKey: "2001", TerritoryKey: "T1", Amount: -200},
			{Date: date(2021, 7, 4), AccountKey: "2001", TerritoryKey: "T2", Amount: -300},
		},
		Accounts: []model.ChartAccount{
			{AccountKey: "1001", Name: "Product Revenue", Class: "Revenue", SubClass: "Sales", SubClass2: "Product"},
			{AccountKey: "2001", Name: "Office Costs", Class: "Expenses", SubClass: "Operating Expenses", SubClass2: "Office"},
		},
		Territories: []model.Territory{
			{TerritoryKey: "T1", Region: "Europe", Country: "United Kingdom"},
			{TerritoryKey: "T2", Region: "Asia Pacific", Country: "Australia"},
		},
		Calendar: []model.CalendarDay{
			{Date: date(2020, 3, 15), Year: 2020},
			{Date: date(2021, 2, 10), Year: 2021},
			{Date: date(2021, 6, 20), Year: 2021},
			{Date: date(2020, 5, 1), Year: 2020},
			{Date: date(2021, 7, 4), Year: 2021},
		},
		ProfitAndLoss: []model.StructureEntry{
			structureEntry("1001", 1, "Revenue", false),
			structureEntry("2001", 2, "Expenses", false),
		},
		BalanceSheet: []model.StructureEntry{
			structureEntry("1001", 1, "Assets", false),
			structureEntry("2001", 2, "Liabilities", false),
		},
		CashFlow: []model.CashFlowMapping{
			{AccountKey: "1001", Type: "Operating", SubType: "Receipts", SubTypeRank: 1, ValueType: model.ValueAllFTP, Account: "Product Revenue"},
			{AccountKey: "2001", Type: "Operating", SubType: "Payments", SubTypeRank: 2, ValueType: model.ValueAllFTP, Account: "Office Costs"},
		},
	}
}

// joinedFacts returns P&L-joined facts for the test dataset.
func joinedFacts(ds *model.Dataset) []model.Fact {
	result, err := Join(ds, model.StatementProfitAndLoss)
	if err != nil {
		panic(err)
	}
	return result.Facts
}
