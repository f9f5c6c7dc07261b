package report

import (
	"context"
	"fmt"

	"github.com/sazfar/finrep/internal/model"
	"github.com/sazfar/finrep/internal/source"
)

// Request describes one report computation: global filters, the hierarchy
// levels on the row axis, and the comparison dimensions on the column axis.
type Request struct {
	Filter     Filter
	Detail     []model.Level
	CompareBy  []model.Dimension
	WithTotals bool
}

// Service computes statements and metrics from a data source. Each
// statement is computed independently; one statement failing never aborts
// the others.
type Service struct {
	src  source.Source
	calc Calculator
}

// NewService creates a reporting service.
func NewService(src source.Source, calc Calculator) *Service {
	return &Service{src: src, calc: calc}
}

// ProfitAndLoss computes the P&L statement: structure join, global
// filters, then the hierarchy pivot. The grand-total row is stripped
// before the table is returned; the Total column, when requested, remains
// for display.
func (s *Service) ProfitAndLoss(ctx context.Context, req Request) (*model.StatementTable, error) {
	ds, err := s.src.Load(ctx)
	if err != nil {
		return nil, err
	}

	joined, err := Join(ds, model.StatementProfitAndLoss)
	if err != nil {
		return nil, err
	}

	facts := req.Filter.Apply(joined.Facts)
	table, err := Aggregate(facts, req.Detail, req.CompareBy, req.WithTotals)
	if err != nil {
		return nil, fmt.Errorf("aggregating profit and loss: %w", err)
	}

	table.StripTotalRow()
	return table, nil
}

// BalanceSheet computes the balance sheet: structure join, then the
// cumulative-by-year rollup converting period flows into balances, then
// global filters and the hierarchy pivot. Filters apply after the rollup
// so balances include prior, unselected years.
func (s *Service) BalanceSheet(ctx context.Context, req Request) (*model.StatementTable, error) {
	ds, err := s.src.Load(ctx)
	if err != nil {
		return nil, err
	}

	joined, err := Join(ds, model.StatementBalanceSheet)
	if err != nil {
		return nil, err
	}

	balances, err := CumulativeByYear(joined.Facts)
	if err != nil {
		return nil, fmt.Errorf("rolling up balances: %w", err)
	}

	facts := req.Filter.Apply(balances)
	table, err := Aggregate(facts, req.Detail, req.CompareBy, false)
	if err != nil {
		return nil, fmt.Errorf("aggregating balance sheet: %w", err)
	}
	return table, nil
}

// CashFlow computes the cash-flow statement: structure join, wide lines,
// the value-type rollforward over all years in the data (ascending,
// regardless of filter selection), melt to long form, then the same
// filter and pivot treatment as the other statements.
func (s *Service) CashFlow(ctx context.Context, req Request) (*model.StatementTable, error) {
	ds, err := s.src.Load(ctx)
	if err != nil {
		return nil, err
	}

	joined, err := Join(ds, model.StatementCashFlow)
	if err != nil {
		return nil, err
	}

	lines := Lines(joined.Facts)
	years := YearsOf(joined.Facts)

	transformed, err := Rollforward(lines, years)
	if err != nil {
		return nil, fmt.Errorf("rolling forward cash flow: %w", err)
	}

	facts := req.Filter.Apply(Melt(transformed, years))
	return AggregateFlows(facts, req.CompareBy), nil
}

// TransactionDetail returns the filtered, denormalized fact table without
// any statement structure applied.
func (s *Service) TransactionDetail(ctx context.Context, filter Filter) ([]model.Fact, error) {
	ds, err := s.src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(JoinBase(ds)), nil
}

// MetricsReport bundles the KPI cards with the per-year ratio tables.
type MetricsReport struct {
	GrossMargin *model.StatementTable
	NetMargin   *model.StatementTable
	EBITDA      *model.StatementTable
	KPI         KPIReport
}

// Metrics computes the KPI cards and ratio tables. The sales cards slice
// base facts filtered by region and country only (to-date spans all
// years); the ratio tables slice fully filtered P&L facts.
func (s *Service) Metrics(ctx context.Context, req Request) (*MetricsReport, error) {
	ds, err := s.src.Load(ctx)
	if err != nil {
		return nil, err
	}

	kpiFilter := Filter{Regions: req.Filter.Regions, Countries: req.Filter.Countries}
	kpiFacts := kpiFilter.Apply(JoinBase(ds))

	joined, err := Join(ds, model.StatementProfitAndLoss)
	if err != nil {
		return nil, err
	}
	pnlFacts := req.Filter.Apply(joined.Facts)

	return &MetricsReport{
		KPI:         s.calc.KPIs(kpiFacts, req.Filter.Years),
		GrossMargin: s.calc.GrossProfitMargin(pnlFacts),
		NetMargin:   s.calc.NetProfitMargin(pnlFacts),
		EBITDA:      s.calc.EBITDA(pnlFacts),
	}, nil
}
