package report

import (
	"fmt"

	"github.com/sazfar/finrep/internal/common"
	"github.com/sazfar/finrep/internal/model"
)

// Lines aggregates cash-flow facts into wide statement lines: one line per
// unique (type, sub-type, value-type, region, country, sign, account)
// tuple, holding one summed amount per year.
func Lines(facts []model.Fact) []model.CashFlowLine {
	byKey := make(map[string]*model.CashFlowLine)
	order := make([]string, 0)

	for i := range facts {
		f := &facts[i]
		line := model.CashFlowLine{
			FlowType:  f.FlowType,
			SubType:   f.FlowSubType,
			ValueType: f.ValueType,
			Region:    f.Region,
			Country:   f.Country,
			Sign:      f.Sign,
			Account:   f.FlowAccount,
		}
		key := line.Key()

		l, ok := byKey[key]
		if !ok {
			line.Amounts = make(map[int]float64)
			byKey[key] = &line
			order = append(order, key)
			l = &line
		}
		l.Amounts[f.Year] += f.Amount
	}

	out := make([]model.CashFlowLine, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out
}

// Rollforward converts each line's raw per-year flows into the amounts the
// cash-flow statement reports, according to the line's value-type policy.
//
// Each line folds over the years independently, carrying one running
// prior-balance accumulator. FTP value types emit the period flow (gated
// on the line's sign for the Positive/Negative variants, negated for the
// change-of-sign variants) and leave the accumulator untouched. The
// balance types accumulate: Closing_balance emits the balance including
// the current year, Opening_balance emits the balance before it; both then
// advance the accumulator. A sign-gated type whose condition fails emits
// zero for that year.
//
// Years must be strictly ascending; the fold is rejected otherwise rather
// than silently accumulating in the wrong order. Lines are never mutated;
// transformed copies are returned.
func Rollforward(lines []model.CashFlowLine, years []int) ([]model.CashFlowLine, error) {
	if len(years) == 0 {
		return nil, common.ErrNoYears
	}
	for i := 1; i < len(years); i++ {
		if years[i] <= years[i-1] {
			return nil, fmt.Errorf("%w: %d after %d", common.ErrYearsNotAscending, years[i], years[i-1])
		}
	}

	out := make([]model.CashFlowLine, 0, len(lines))
	for i := range lines {
		line := lines[i].Clone()
		prior := 0.0

		for _, year := range years {
			v := line.Amounts[year]
			emitted := 0.0

			switch line.ValueType {
			case model.ValueAllFTP:
				emitted = v
			case model.ValueAllFTPCS:
				emitted = -v
			case model.ValueAllFTPPositive:
				if line.Sign == model.SignPositive {
					emitted = v
				}
			case model.ValueAllFTPNegative:
				if line.Sign == model.SignNegative {
					emitted = v
				}
			case model.ValueAllFTPPositiveCS:
				if line.Sign == model.SignPositive {
					emitted = -v
				}
			case model.ValueAllFTPNegativeCS:
				if line.Sign == model.SignNegative {
					emitted = -v
				}
			case model.ValueClosingBalance:
				emitted = v + prior
				prior = emitted
			case model.ValueOpeningBalance:
				emitted = prior
				prior += v
			}

			line.Amounts[year] = emitted
		}

		out = append(out, line)
	}
	return out, nil
}

// Melt reshapes wide cash-flow lines into long facts, one row per year,
// ready for the same filter and pivot treatment as other statements.
func Melt(lines []model.CashFlowLine, years []int) []model.Fact {
	out := make([]model.Fact, 0, len(lines)*len(years))
	for i := range lines {
		l := &lines[i]
		for _, year := range years {
			out = append(out, model.Fact{
				FlowType:    l.FlowType,
				FlowSubType: l.SubType,
				ValueType:   l.ValueType,
				Sign:        l.Sign,
				FlowAccount: l.Account,
				Region:      l.Region,
				Country:     l.Country,
				Year:        year,
				Amount:      l.Amounts[year],
			})
		}
	}
	return out
}
