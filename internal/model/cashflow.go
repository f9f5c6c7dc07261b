package model

import "strings"

// ValueType is the cash-flow rollforward policy for one statement line.
type ValueType string

// Value types, exactly as they appear in the cash-flow structure table.
// FTP ("fiscal to period") types emit the period flow, optionally gated on
// the line's sign and optionally change-of-sign (_CS) negated; the balance
// types accumulate across years.
const (
	ValueAllFTP           ValueType = "All_FTP"
	ValueAllFTPCS         ValueType = "All_FTP_CS"
	ValueAllFTPPositive   ValueType = "All_FTP_Positive"
	ValueAllFTPNegative   ValueType = "All_FTP_Negative"
	ValueAllFTPPositiveCS ValueType = "All_FTP_Positive_CS"
	ValueAllFTPNegativeCS ValueType = "All_FTP_Negative_CS"
	ValueClosingBalance   ValueType = "Closing_balance"
	ValueOpeningBalance   ValueType = "Opening_balance"
)

// Sign classifies a flow amount as positive or negative.
type Sign string

// Flow signs.
const (
	SignPositive Sign = "Positive"
	SignNegative Sign = "Negative"
)

// SignOf returns the sign of an amount. Zero counts as negative, matching
// the strict amount > 0 test used when stamping facts.
func SignOf(amount float64) Sign {
	if amount > 0 {
		return SignPositive
	}
	return SignNegative
}

// CashFlowLine is one cash-flow statement line: the unique key tuple plus
// one summed amount per year. The rollforward replaces Amounts with
// policy-adjusted values, one pass per line, years ascending.
type CashFlowLine struct {
	Amounts   map[int]float64
	FlowType  string
	SubType   HierarchyCell
	ValueType ValueType
	Region    string
	Country   string
	Sign      Sign
	Account   string
}

// Key returns the line's unique grouping key. The rollforward accumulator
// is scoped to this key and never shared across lines.
func (l *CashFlowLine) Key() string {
	return strings.Join([]string{
		l.FlowType,
		l.SubType.ID(),
		string(l.ValueType),
		l.Region,
		l.Country,
		string(l.Sign),
		l.Account,
	}, "\x1f")
}

// Clone returns a deep copy of the line. Rollforward mutates a private
// copy, never the caller's lines.
func (l *CashFlowLine) Clone() CashFlowLine {
	out := *l
	out.Amounts = make(map[int]float64, len(l.Amounts))
	for y, v := range l.Amounts {
		out.Amounts[y] = v
	}
	return out
}
