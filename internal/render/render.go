package render

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/sazfar/finrep/internal/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder renders a cell with no data.
const Placeholder = "-"

var printer = message.NewPrinter(language.English)

// Amount renders an absolute amount with thousands separators; negative
// amounts render parenthesized, accounting style.
func Amount(v float64) string {
	if v < 0 {
		return printer.Sprintf("(%.0f)", -v)
	}
	return printer.Sprintf("%.0f", v)
}

// Percent renders a ratio value with two decimals and a percent sign.
func Percent(v float64) string {
	return printer.Sprintf("%.2f%%", v)
}

// value renders one table cell according to the table's mode.
func value(t *model.StatementTable, row int, col model.ColumnKey) string {
	v, ok := t.Value(row, col)
	if !ok {
		return Placeholder
	}
	if t.Percent {
		return Percent(v)
	}
	return Amount(v)
}

// Statement renders an aggregated statement table as aligned text.
func Statement(title string, t *model.StatementTable) string {
	var b strings.Builder
	b.WriteString(FormatTitle(title))
	b.WriteString("\n")

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)

	headers := make([]string, 0, len(t.RowTitles)+len(t.Columns))
	headers = append(headers, t.RowTitles...)
	for _, c := range t.Columns {
		headers = append(headers, c.String())
	}
	fmt.Fprintln(w, strings.Join(headers, "\t")+"\t")

	for i := range t.Rows {
		cells := make([]string, 0, len(headers))
		for _, c := range t.Rows[i].Cells {
			cells = append(cells, c.Label)
		}
		for _, col := range t.Columns {
			cells = append(cells, value(t, i, col))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	}

	_ = w.Flush()
	return b.String()
}

// Detail renders the denormalized transaction facts as a flat table.
func Detail(facts []model.Fact) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "Date\tAccount\tClass\tSubClass\tRegion\tCountry\tYear\tAmount\t")
	for i := range facts {
		f := &facts[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t\n",
			f.Date.Format("2006-01-02"),
			f.AccountName,
			f.Class,
			f.SubClass,
			f.Region,
			f.Country,
			f.Year,
			Amount(f.Amount))
	}

	_ = w.Flush()
	return b.String()
}

// KPICard renders one metric card. Delta may be empty.
func KPICard(title, figure, delta string) string {
	lines := []string{
		SubtleStyle.Render(title),
		BoldStyle.Render(figure),
	}
	if delta != "" {
		lines = append(lines, SubtleStyle.Render("Δ "+delta))
	}
	return CardStyle.Render(strings.Join(lines, "\n"))
}
