package report

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sazfar/finrep/internal/model"
)

// Labels are the hierarchy labels the metric calculator slices on. They
// default to the conventional statement categories but are configurable,
// so a structure table that renames a category does not silently zero the
// metrics.
type Labels struct {
	Sales             string
	GrossProfit       string
	NetProfit         string
	CostOfSales       string
	OperatingExpenses string
}

// DefaultLabels returns the conventional statement category labels.
func DefaultLabels() Labels {
	return Labels{
		Sales:             "Sales",
		GrossProfit:       "Gross Profit",
		NetProfit:         "Net Profit",
		CostOfSales:       "Cost of Sales",
		OperatingExpenses: "Operating Expenses",
	}
}

// DefaultFallbackYear is the "current" year assumed when no year filter is
// active and no fallback is configured.
const DefaultFallbackYear = 2020

var (
	sortPrefixRe = regexp.MustCompile(`^\s*\d+\s*-\s*`)
	emphasisRe   = regexp.MustCompile(`</?i>|[*_]`)
)

// CleanLabel strips a leading rank prefix ("07 - ") and any emphasis
// markup from a hierarchy label before comparison. Labels produced by this
// package are already clean; labels from imported tables may not be.
func CleanLabel(s string) string {
	s = sortPrefixRe.ReplaceAllString(s, "")
	s = emphasisRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Calculator derives scalar and ratio KPIs from aggregated statement data.
type Calculator struct {
	Labels       Labels
	FallbackYear int
}

// NewCalculator returns a calculator with the given labels, applying
// defaults for zero values.
func NewCalculator(labels Labels, fallbackYear int) Calculator {
	def := DefaultLabels()
	if labels.Sales == "" {
		labels.Sales = def.Sales
	}
	if labels.GrossProfit == "" {
		labels.GrossProfit = def.GrossProfit
	}
	if labels.NetProfit == "" {
		labels.NetProfit = def.NetProfit
	}
	if labels.CostOfSales == "" {
		labels.CostOfSales = def.CostOfSales
	}
	if labels.OperatingExpenses == "" {
		labels.OperatingExpenses = def.OperatingExpenses
	}
	if fallbackYear == 0 {
		fallbackYear = DefaultFallbackYear
	}
	return Calculator{Labels: labels, FallbackYear: fallbackYear}
}

// KPIReport holds the scalar sales metrics for the metric cards.
type KPIReport struct {
	// SalesTTD is total sales across all years in the data.
	SalesTTD float64
	// SalesFTP is total sales for the current year.
	SalesFTP float64
	// SalesDelta is SalesFTP minus the prior year's sales.
	SalesDelta  float64
	CurrentYear int
	PriorYear   int
}

// CurrentYear resolves the "current" reporting year: the latest selected
// year, or the configured fallback when no year filter is active. An
// active selection always wins, even when it lies entirely before the
// fallback.
func (c Calculator) CurrentYear(selectedYears []int) int {
	if len(selectedYears) == 0 {
		return c.FallbackYear
	}
	year := selectedYears[0]
	for _, y := range selectedYears[1:] {
		if y > year {
			year = y
		}
	}
	return year
}

// KPIs computes the sales metric cards from base facts already filtered by
// region and country, but not by year: the to-date figure spans all years.
// Slicing uses the chart-of-accounts sub-class.
func (c Calculator) KPIs(facts []model.Fact, selectedYears []int) KPIReport {
	report := KPIReport{
		CurrentYear: c.CurrentYear(selectedYears),
	}
	report.PriorYear = report.CurrentYear - 1

	var priorSales float64
	for i := range facts {
		if CleanLabel(facts[i].SubClass) != c.Labels.Sales {
			continue
		}
		report.SalesTTD += facts[i].Amount
		switch facts[i].Year {
		case report.CurrentYear:
			report.SalesFTP += facts[i].Amount
		case report.PriorYear:
			priorSales += facts[i].Amount
		}
	}
	report.SalesDelta = report.SalesFTP - priorSales

	return report
}

// GrossProfitMargin returns gross profit as a percentage of sales, per
// year, sliced from P&L-joined facts on the structure hierarchy labels.
func (c Calculator) GrossProfitMargin(facts []model.Fact) *model.StatementTable {
	gross := c.yearSeries(facts, model.LevelClass, c.Labels.GrossProfit)
	sales := c.yearSeries(facts, model.LevelSubClass, c.Labels.Sales)
	return ratioTable("Gross Profit %", gross, sales)
}

// NetProfitMargin returns net profit as a percentage of sales, per year.
func (c Calculator) NetProfitMargin(facts []model.Fact) *model.StatementTable {
	net := c.yearSeries(facts, model.LevelClass, c.Labels.NetProfit)
	sales := c.yearSeries(facts, model.LevelSubClass, c.Labels.Sales)
	return ratioTable("Net Profit %", net, sales)
}

// EBITDA returns sales plus cost of sales plus operating expenses per
// year. Costs carry their ledger sign, so the plain sum is the algebraic
// combination.
func (c Calculator) EBITDA(facts []model.Fact) *model.StatementTable {
	series := c.yearSeries(facts, model.LevelSubClass,
		c.Labels.Sales, c.Labels.CostOfSales, c.Labels.OperatingExpenses)
	return seriesTable("EBITDA", series, false)
}

// yearSeries sums amounts per year for facts whose cleaned hierarchy label
// at the given level matches any of the wanted labels.
func (c Calculator) yearSeries(facts []model.Fact, level model.Level, wanted ...string) map[int]float64 {
	out := make(map[int]float64)
	for i := range facts {
		cell, ok := facts[i].Hierarchy[level]
		if !ok {
			continue
		}
		label := CleanLabel(cell.Label)
		for _, w := range wanted {
			if label == w {
				out[facts[i].Year] += facts[i].Amount
				break
			}
		}
	}
	return out
}

// ratioTable builds a one-row percentage table of num/den*100 per year.
// Years where the denominator is absent or zero are left blank.
func ratioTable(name string, num, den map[int]float64) *model.StatementTable {
	ratios := make(map[int]float64, len(num))
	for year, d := range den {
		if d == 0 {
			continue
		}
		ratios[year] = num[year] / d * 100
	}
	return seriesTable(name, ratios, true)
}

// seriesTable wraps a per-year series as a one-row statement table with
// year columns ascending.
func seriesTable(name string, series map[int]float64, percent bool) *model.StatementTable {
	years := make([]int, 0, len(series))
	for y := range series {
		years = append(years, y)
	}
	sort.Ints(years)

	columns := make([]model.ColumnKey, 0, len(years))
	values := make(map[string]float64, len(years))
	for _, y := range years {
		col := model.ColumnKey{model.FormatYear(y)}
		columns = append(columns, col)
		values[col.ID()] = series[y]
	}

	return &model.StatementTable{
		RowTitles:  []string{"Metric"},
		ColumnDims: []model.Dimension{model.DimensionYear},
		Columns:    columns,
		Rows: []model.Row{{
			Cells:  []model.HierarchyCell{{Label: name}},
			Values: values,
		}},
		Percent: percent,
	}
}
