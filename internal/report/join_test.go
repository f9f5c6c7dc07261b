package report

import (
	"testing"

	"github.com/sazfar/finrep/internal/model"
)

func TestJoin_InnerJoinDropsUnmappedAccounts(t *testing.T) {
	ds := testDataset()
	// An account with ledger activity but no P&L structure mapping.
	ds.Ledger = append(ds.Ledger, model.Transaction{
		Date: date(2021, 1, 1), AccountKey: "9999", TerritoryKey: "T1", Amount: 50,
	})

	result, err := Join(ds, model.StatementProfitAndLoss)
	if err != nil {
		t.Fatalf("Join() unexpected error: %v", err)
	}

	if result.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", result.Dropped)
	}
	if len(result.Facts) != len(ds.Ledger)-1 {
		t.Errorf("Facts = %d rows, want %d", len(result.Facts), len(ds.Ledger)-1)
	}
	for _, f := range result.Facts {
		if f.AccountKey == "9999" {
			t.Error("unmapped account leaked into the statement facts")
		}
	}
}

func TestJoin_LeftJoinKeepsUnmatchedDimensions(t *testing.T) {
	ds := testDataset()
	// A territory key with no territory table entry.
	ds.Ledger = append(ds.Ledger, model.Transaction{
		Date: date(2021, 1, 1), AccountKey: "1001", TerritoryKey: "T9", Amount: 75,
	})

	result, err := Join(ds, model.StatementProfitAndLoss)
	if err != nil {
		t.Fatalf("Join() unexpected error: %v", err)
	}

	var found bool
	for _, f := range result.Facts {
		if f.TerritoryKey == "T9" {
			found = true
			if f.Region != "" || f.Country != "" {
				t.Errorf("unmatched territory produced region=%q country=%q, want empty", f.Region, f.Country)
			}
		}
	}
	if !found {
		t.Fatal("row with unmatched territory was dropped; left join must keep it")
	}
}

func TestJoin_YearDerivation(t *testing.T) {
	ds := testDataset()
	// A date missing from the calendar falls back to the date's own year.
	ds.Ledger = append(ds.Ledger, model.Transaction{
		Date: date(2022, 11, 30), AccountKey: "1001", TerritoryKey: "T1", Amount: 10,
	})

	result, err := Join(ds, model.StatementProfitAndLoss)
	if err != nil {
		t.Fatalf("Join() unexpected error: %v", err)
	}

	for _, f := range result.Facts {
		if f.Date.Equal(date(2022, 11, 30)) && f.Year != 2022 {
			t.Errorf("fallback year = %d, want 2022", f.Year)
		}
		if f.Date.Equal(date(2020, 3, 15)) && f.Year != 2020 {
			t.Errorf("calendar year = %d, want 2020", f.Year)
		}
	}
}

func TestJoin_StatementsAreIndependent(t *testing.T) {
	ds := testDataset()
	// Remove account 2001 from the balance sheet structure only.
	ds.BalanceSheet = ds.BalanceSheet[:1]

	pnl, err := Join(ds, model.StatementProfitAndLoss)
	if err != nil {
		t.Fatalf("P&L join: %v", err)
	}
	bs, err := Join(ds, model.StatementBalanceSheet)
	if err != nil {
		t.Fatalf("balance sheet join: %v", err)
	}

	if pnl.Dropped != 0 {
		t.Errorf("P&L dropped %d rows, want 0", pnl.Dropped)
	}
	if bs.Dropped != 2 {
		t.Errorf("balance sheet dropped %d rows, want 2", bs.Dropped)
	}
}

func TestJoinCashFlow_StampsSign(t *testing.T) {
	ds := testDataset()
	result, err := Join(ds, model.StatementCashFlow)
	if err != nil {
		t.Fatalf("Join() unexpected error: %v", err)
	}

	for _, f := range result.Facts {
		want := model.SignPositive
		if f.Amount <= 0 {
			want = model.SignNegative
		}
		if f.Sign != want {
			t.Errorf("amount %.0f stamped %s, want %s", f.Amount, f.Sign, want)
		}
		if f.FlowType != "Operating" {
			t.Errorf("FlowType = %q, want Operating", f.FlowType)
		}
		if f.FlowSubType.SortKey == "" {
			t.Error("cash-flow fact missing sub-type sort key")
		}
	}
}

func TestYearsOf(t *testing.T) {
	facts := []model.Fact{{Year: 2021}, {Year: 2019}, {Year: 2021}, {Year: 2020}}
	got := YearsOf(facts)
	want := []int{2019, 2020, 2021}
	if len(got) != len(want) {
		t.Fatalf("YearsOf() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("YearsOf() = %v, want %v", got, want)
		}
	}
}
