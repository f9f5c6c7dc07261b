package report

import (
	"testing"

	"github.com/sazfar/finrep/internal/model"
)

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sales", "Sales"},
		{"07 - Sales", "Sales"},
		{" 12 - Gross Profit ", "Gross Profit"},
		{"<i>Net Profit</i>", "Net Profit"},
		{"**Gross Profit**", "Gross Profit"},
		{"_Sales_", "Sales"},
	}
	for _, tt := range tests {
		if got := CleanLabel(tt.in); got != tt.want {
			t.Errorf("CleanLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewCalculator_Defaults(t *testing.T) {
	c := NewCalculator(Labels{Sales: "Net Revenue"}, 0)

	if c.Labels.Sales != "Net Revenue" {
		t.Errorf("Sales = %q, want the configured override", c.Labels.Sales)
	}
	if c.Labels.GrossProfit != "Gross Profit" {
		t.Errorf("GrossProfit = %q, want the default", c.Labels.GrossProfit)
	}
	if c.FallbackYear != DefaultFallbackYear {
		t.Errorf("FallbackYear = %d, want %d", c.FallbackYear, DefaultFallbackYear)
	}
}

func TestCalculator_CurrentYear(t *testing.T) {
	c := NewCalculator(Labels{}, 0)

	if got := c.CurrentYear(nil); got != DefaultFallbackYear {
		t.Errorf("CurrentYear(nil) = %d, want fallback %d", got, DefaultFallbackYear)
	}
	if got := c.CurrentYear([]int{2021, 2023, 2022}); got != 2023 {
		t.Errorf("CurrentYear = %d, want 2023", got)
	}
	// An active selection wins over the fallback, even entirely below it.
	if got := c.CurrentYear([]int{2018}); got != 2018 {
		t.Errorf("CurrentYear([2018]) = %d, want 2018", got)
	}
	if got := c.CurrentYear([]int{2017, 2018}); got != 2018 {
		t.Errorf("CurrentYear([2017 2018]) = %d, want 2018", got)
	}
}

func salesFact(year int, amount float64) model.Fact {
	return model.Fact{Year: year, Amount: amount, SubClass: "Sales"}
}

func TestCalculator_KPIs(t *testing.T) {
	c := NewCalculator(Labels{}, 2021)
	facts := []model.Fact{
		salesFact(2019, 500),
		salesFact(2020, 800),
		salesFact(2021, 1000),
		salesFact(2021, 200),
		{Year: 2021, Amount: -300, SubClass: "Operating Expenses"},
	}

	report := c.KPIs(facts, []int{2020, 2021})

	if report.CurrentYear != 2021 || report.PriorYear != 2020 {
		t.Fatalf("years = %d/%d, want 2021/2020", report.CurrentYear, report.PriorYear)
	}
	if report.SalesTTD != 2500 {
		t.Errorf("SalesTTD = %.0f, want 2500", report.SalesTTD)
	}
	if report.SalesFTP != 1200 {
		t.Errorf("SalesFTP = %.0f, want 1200", report.SalesFTP)
	}
	if report.SalesDelta != 400 {
		t.Errorf("SalesDelta = %.0f, want 400", report.SalesDelta)
	}
}

func TestCalculator_KPIs_FallbackYear(t *testing.T) {
	c := NewCalculator(Labels{}, 2020)
	facts := []model.Fact{salesFact(2020, 800), salesFact(2019, 300)}

	report := c.KPIs(facts, nil)

	if report.CurrentYear != 2020 {
		t.Fatalf("CurrentYear = %d, want the fallback 2020", report.CurrentYear)
	}
	if report.SalesFTP != 800 {
		t.Errorf("SalesFTP = %.0f, want 800", report.SalesFTP)
	}
	if report.SalesDelta != 500 {
		t.Errorf("SalesDelta = %.0f, want 500", report.SalesDelta)
	}
}

func TestCalculator_KPIs_SelectionBelowFallbackYear(t *testing.T) {
	c := NewCalculator(Labels{}, 2020)
	facts := []model.Fact{
		salesFact(2017, 300),
		salesFact(2018, 700),
		salesFact(2020, 900),
	}

	report := c.KPIs(facts, []int{2017, 2018})

	// The filtered-out 2020 must not become the current year.
	if report.CurrentYear != 2018 || report.PriorYear != 2017 {
		t.Fatalf("years = %d/%d, want 2018/2017", report.CurrentYear, report.PriorYear)
	}
	if report.SalesFTP != 700 {
		t.Errorf("SalesFTP = %.0f, want 700", report.SalesFTP)
	}
	if report.SalesDelta != 400 {
		t.Errorf("SalesDelta = %.0f, want 400", report.SalesDelta)
	}
	if report.SalesTTD != 1900 {
		t.Errorf("SalesTTD = %.0f, want 1900", report.SalesTTD)
	}
}

func TestCalculator_KPIs_MatchesPrefixedLabels(t *testing.T) {
	c := NewCalculator(Labels{}, 2020)
	facts := []model.Fact{{Year: 2020, Amount: 100, SubClass: "03 - Sales"}}

	if got := c.KPIs(facts, nil).SalesTTD; got != 100 {
		t.Errorf("SalesTTD = %.0f, want 100 (prefixed label must match)", got)
	}
}

func marginFact(year int, amount float64, class, subClass string) model.Fact {
	return model.Fact{
		Year:   year,
		Amount: amount,
		Hierarchy: map[model.Level]model.HierarchyCell{
			model.LevelClass:    {Label: class},
			model.LevelSubClass: {Label: subClass},
		},
	}
}

func TestCalculator_GrossProfitMargin(t *testing.T) {
	c := NewCalculator(Labels{}, 0)
	facts := []model.Fact{
		marginFact(2021, 1000, "Revenue", "Sales"),
		marginFact(2021, 400, "Gross Profit", "Gross Profit / sub"),
	}

	table := c.GrossProfitMargin(facts)

	if !table.Percent {
		t.Error("margin table not marked as percentage")
	}
	if len(table.Rows) != 1 || len(table.Columns) != 1 {
		t.Fatalf("margin table shape %dx%d, want 1x1", len(table.Rows), len(table.Columns))
	}
	got, ok := table.Value(0, table.Columns[0])
	if !ok {
		t.Fatal("margin value missing")
	}
	if got != 40 {
		t.Errorf("gross margin = %.2f, want 40.00", got)
	}
}

func TestCalculator_Margin_SkipsZeroSalesYears(t *testing.T) {
	c := NewCalculator(Labels{}, 0)
	facts := []model.Fact{
		marginFact(2021, 1000, "Revenue", "Sales"),
		marginFact(2021, 300, "Net Profit", "Net Profit / sub"),
		// 2022 has profit movement but no sales.
		marginFact(2022, 100, "Net Profit", "Net Profit / sub"),
	}

	table := c.NetProfitMargin(facts)

	if len(table.Columns) != 1 || table.Columns[0].String() != "2021" {
		t.Fatalf("columns = %v, want [2021] only", table.Columns)
	}
	if got, _ := table.Value(0, table.Columns[0]); got != 30 {
		t.Errorf("net margin = %.2f, want 30.00", got)
	}
}

func TestCalculator_EBITDA(t *testing.T) {
	c := NewCalculator(Labels{}, 0)
	facts := []model.Fact{
		marginFact(2021, 1000, "Revenue", "Sales"),
		marginFact(2021, -350, "Expenses", "Cost of Sales"),
		marginFact(2021, -250, "Expenses", "Operating Expenses"),
		// Below-the-line items stay out.
		marginFact(2021, -40, "Expenses", "Depreciation"),
	}

	table := c.EBITDA(facts)

	if table.Percent {
		t.Error("EBITDA table marked as percentage")
	}
	if got, _ := table.Value(0, table.Columns[0]); got != 400 {
		t.Errorf("EBITDA = %.0f, want 400", got)
	}
}

func TestCalculator_ConfiguredLabels(t *testing.T) {
	c := NewCalculator(Labels{Sales: "Net Revenue"}, 0)
	facts := []model.Fact{
		marginFact(2021, 2000, "Revenue", "Net Revenue"),
		marginFact(2021, 500, "Gross Profit", "x"),
	}

	if got, _ := c.GrossProfitMargin(facts).Value(0, model.ColumnKey{"2021"}); got != 25 {
		t.Errorf("gross margin with renamed sales label = %.2f, want 25.00", got)
	}
}
