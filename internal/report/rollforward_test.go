package report

import (
	"errors"
	"testing"

	"github.com/sazfar/finrep/internal/common"
	"github.com/sazfar/finrep/internal/model"
)

func flowLine(valueType model.ValueType, sign model.Sign, amounts map[int]float64) model.CashFlowLine {
	return model.CashFlowLine{
		FlowType:  "Operating",
		SubType:   model.HierarchyCell{SortKey: "01", Label: "Receipts"},
		ValueType: valueType,
		Sign:      sign,
		Amounts:   amounts,
	}
}

func TestRollforward_ValueTypes(t *testing.T) {
	years := []int{2020, 2021}

	tests := []struct {
		name string
		line model.CashFlowLine
		want map[int]float64
	}{
		{
			name: "flow-to-period emits the raw flow",
			line: flowLine(model.ValueAllFTP, model.SignPositive, map[int]float64{2020: 100, 2021: 50}),
			want: map[int]float64{2020: 100, 2021: 50},
		},
		{
			name: "change-of-sign negates the flow",
			line: flowLine(model.ValueAllFTPCS, model.SignPositive, map[int]float64{2020: 100, 2021: -40}),
			want: map[int]float64{2020: -100, 2021: 40},
		},
		{
			name: "positive gate passes a positive line",
			line: flowLine(model.ValueAllFTPPositive, model.SignPositive, map[int]float64{2020: 100, 2021: 50}),
			want: map[int]float64{2020: 100, 2021: 50},
		},
		{
			name: "positive gate zeroes a negative line",
			line: flowLine(model.ValueAllFTPPositive, model.SignNegative, map[int]float64{2020: -100, 2021: -50}),
			want: map[int]float64{2020: 0, 2021: 0},
		},
		{
			name: "negative gate passes a negative line",
			line: flowLine(model.ValueAllFTPNegative, model.SignNegative, map[int]float64{2020: -100, 2021: -50}),
			want: map[int]float64{2020: -100, 2021: -50},
		},
		{
			name: "negative gate zeroes a positive line",
			line: flowLine(model.ValueAllFTPNegative, model.SignPositive, map[int]float64{2020: 100, 2021: 50}),
			want: map[int]float64{2020: 0, 2021: 0},
		},
		{
			name: "positive gate with change of sign",
			line: flowLine(model.ValueAllFTPPositiveCS, model.SignPositive, map[int]float64{2020: 100, 2021: 50}),
			want: map[int]float64{2020: -100, 2021: -50},
		},
		{
			name: "negative gate with change of sign",
			line: flowLine(model.ValueAllFTPNegativeCS, model.SignNegative, map[int]float64{2020: -100, 2021: -50}),
			want: map[int]float64{2020: 100, 2021: 50},
		},
		{
			name: "closing balance accumulates including the current year",
			line: flowLine(model.ValueClosingBalance, model.SignPositive, map[int]float64{2020: 100, 2021: 50}),
			want: map[int]float64{2020: 100, 2021: 150},
		},
		{
			name: "opening balance lags the accumulator by one year",
			line: flowLine(model.ValueOpeningBalance, model.SignPositive, map[int]float64{2020: 100, 2021: 50}),
			want: map[int]float64{2020: 0, 2021: 100},
		},
		{
			name: "year with no activity contributes zero flow",
			line: flowLine(model.ValueClosingBalance, model.SignPositive, map[int]float64{2020: 100}),
			want: map[int]float64{2020: 100, 2021: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rollforward([]model.CashFlowLine{tt.line}, years)
			if err != nil {
				t.Fatalf("Rollforward() unexpected error: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("Rollforward() returned %d lines, want 1", len(got))
			}
			for _, year := range years {
				if got[0].Amounts[year] != tt.want[year] {
					t.Errorf("year %d = %.0f, want %.0f", year, got[0].Amounts[year], tt.want[year])
				}
			}
		})
	}
}

func TestRollforward_LinesFoldIndependently(t *testing.T) {
	lines := []model.CashFlowLine{
		flowLine(model.ValueClosingBalance, model.SignPositive, map[int]float64{2020: 100, 2021: 50}),
		flowLine(model.ValueOpeningBalance, model.SignPositive, map[int]float64{2020: 100, 2021: 50}),
	}

	got, err := Rollforward(lines, []int{2020, 2021})
	if err != nil {
		t.Fatalf("Rollforward() unexpected error: %v", err)
	}

	if got[0].Amounts[2020] != 100 || got[0].Amounts[2021] != 150 {
		t.Errorf("closing line = %v, want [100 150]", got[0].Amounts)
	}
	if got[1].Amounts[2020] != 0 || got[1].Amounts[2021] != 100 {
		t.Errorf("opening line = %v, want [0 100]", got[1].Amounts)
	}
}

func TestRollforward_InputNotMutated(t *testing.T) {
	line := flowLine(model.ValueClosingBalance, model.SignPositive, map[int]float64{2020: 100, 2021: 50})

	if _, err := Rollforward([]model.CashFlowLine{line}, []int{2020, 2021}); err != nil {
		t.Fatalf("Rollforward() unexpected error: %v", err)
	}

	if line.Amounts[2020] != 100 || line.Amounts[2021] != 50 {
		t.Errorf("input line mutated: %v", line.Amounts)
	}
}

func TestRollforward_RejectsUnorderedYears(t *testing.T) {
	line := flowLine(model.ValueAllFTP, model.SignPositive, map[int]float64{2020: 100})

	tests := []struct {
		name  string
		years []int
		want  error
	}{
		{"no years", nil, common.ErrNoYears},
		{"descending", []int{2021, 2020}, common.ErrYearsNotAscending},
		{"duplicate", []int{2020, 2020}, common.ErrYearsNotAscending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rollforward([]model.CashFlowLine{line}, tt.years)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Rollforward() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLines_GroupsByKeyTuple(t *testing.T) {
	ds := testDataset()
	result, err := Join(ds, model.StatementCashFlow)
	if err != nil {
		t.Fatalf("Join() unexpected error: %v", err)
	}

	lines := Lines(result.Facts)

	// 1001 activity spans both territories, 2001 likewise, so territory
	// splits produce more than one line per account.
	if len(lines) < 2 {
		t.Fatalf("Lines() returned %d lines, want at least 2", len(lines))
	}

	var total float64
	for _, l := range lines {
		for _, v := range l.Amounts {
			total += v
		}
	}
	var want float64
	for _, txn := range ds.Ledger {
		want += txn.Amount
	}
	if total != want {
		t.Errorf("Lines() amounts sum to %.0f, want %.0f", total, want)
	}
}

func TestMelt_OneFactPerLineYear(t *testing.T) {
	lines := []model.CashFlowLine{
		flowLine(model.ValueAllFTP, model.SignPositive, map[int]float64{2020: 100, 2021: 50}),
	}

	facts := Melt(lines, []int{2020, 2021})
	if len(facts) != 2 {
		t.Fatalf("Melt() returned %d facts, want 2", len(facts))
	}
	for _, f := range facts {
		if f.FlowType != "Operating" || f.FlowSubType.Label != "Receipts" {
			t.Errorf("melted fact lost its line identity: %+v", f)
		}
	}
	if facts[0].Year != 2020 || facts[0].Amount != 100 {
		t.Errorf("first fact = year %d amount %.0f, want 2020/100", facts[0].Year, facts[0].Amount)
	}
	if facts[1].Year != 2021 || facts[1].Amount != 50 {
		t.Errorf("second fact = year %d amount %.0f, want 2021/50", facts[1].Year, facts[1].Amount)
	}
}
