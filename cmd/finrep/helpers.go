package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/sazfar/finrep/internal/common"
	"github.com/sazfar/finrep/internal/config"
	"github.com/sazfar/finrep/internal/model"
	"github.com/sazfar/finrep/internal/render"
	"github.com/sazfar/finrep/internal/report"
	"github.com/sazfar/finrep/internal/sheets"
	"github.com/sazfar/finrep/internal/source"

	"github.com/spf13/cobra"
)

// addFilterFlags registers the global-filter flags shared by all report
// commands. An omitted flag means no restriction on that dimension.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().IntSliceP("year", "y", nil, "Years to include (default: all)")
	cmd.Flags().StringSliceP("region", "r", nil, "Regions to include (default: all)")
	cmd.Flags().StringSliceP("country", "c", nil, "Countries to include (default: all)")
}

// addShapeFlags registers the row/column axis flags.
func addShapeFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("detail", "d", nil,
		"Hierarchy levels on rows: Class, SubClass, SubClass2, Account (default: Class,SubClass,SubClass2)")
	cmd.Flags().StringSlice("compare-by", nil,
		"Comparison dimensions on columns: Region and/or Country (Year is always included)")
}

// addOutputFlags registers output format and export flags.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "table", "Output format (table, csv, json)")
	cmd.Flags().Bool("export", false, "Export to Google Sheets")
}

// requestFromFlags builds a report request from the command's flags.
func requestFromFlags(cmd *cobra.Command) (report.Request, error) {
	var req report.Request

	years, _ := cmd.Flags().GetIntSlice("year")
	regions, _ := cmd.Flags().GetStringSlice("region")
	countries, _ := cmd.Flags().GetStringSlice("country")
	req.Filter = report.Filter{Years: years, Regions: regions, Countries: countries}

	if cmd.Flags().Lookup("detail") != nil {
		names, _ := cmd.Flags().GetStringSlice("detail")
		for _, name := range names {
			level, ok := model.ParseLevel(name)
			if !ok {
				return req, fmt.Errorf("invalid hierarchy level %q (expected Class, SubClass, SubClass2, or Account)", name)
			}
			req.Detail = append(req.Detail, level)
		}
	}

	if cmd.Flags().Lookup("compare-by") != nil {
		names, _ := cmd.Flags().GetStringSlice("compare-by")
		for _, name := range names {
			dim, ok := model.ParseDimension(name)
			if !ok {
				return req, fmt.Errorf("invalid comparison dimension %q (expected Region or Country)", name)
			}
			req.CompareBy = append(req.CompareBy, dim)
		}
	}

	return req, nil
}

// initService opens the workbook behind the memoizing cache and wires the
// reporting service. The returned closer releases the workbook connection.
func initService() (*report.Service, func() error, error) {
	src, err := source.NewSQLiteSource(config.WorkbookPath())
	if err != nil {
		return nil, nil, common.NewUserError(
			"failed to open workbook (set data.workbook in config or pass --workbook)", err)
	}

	svc := report.NewService(source.NewCache(src), config.LoadCalculator())
	return svc, src.Close, nil
}

// outputStatement renders or exports one statement according to the
// command's output flags.
func outputStatement(ctx context.Context, cmd *cobra.Command, title string, table *model.StatementTable) error {
	format, _ := cmd.Flags().GetString("format")
	export, _ := cmd.Flags().GetBool("export")

	switch format {
	case "table":
		fmt.Println(render.Statement(title, table)) //nolint:forbidigo // User-facing output
	case "csv":
		if err := writeCSV(os.Stdout, table); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	case "json":
		if err := writeJSON(os.Stdout, title, table); err != nil {
			return fmt.Errorf("failed to write json: %w", err)
		}
	default:
		return fmt.Errorf("invalid output format %q (expected table, csv, or json)", format)
	}

	if export {
		if err := exportStatement(ctx, title, table); err != nil {
			return err
		}
	}
	return nil
}

func exportStatement(ctx context.Context, title string, table *model.StatementTable) error {
	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return common.NewUserError("sheets not configured (run 'finrep auth sheets' first)", err)
	}

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	return writer.WriteStatement(ctx, title, table)
}

func writeCSV(f *os.File, table *model.StatementTable) error {
	w := csv.NewWriter(f)

	header := make([]string, 0, len(table.RowTitles)+len(table.Columns))
	header = append(header, table.RowTitles...)
	for _, c := range table.Columns {
		header = append(header, c.String())
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range table.Rows {
		record := make([]string, 0, len(header))
		for _, cell := range table.Rows[i].Cells {
			record = append(record, cell.Label)
		}
		for _, col := range table.Columns {
			v, ok := table.Value(i, col)
			if !ok {
				record = append(record, "")
			} else {
				record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

type jsonStatement struct {
	Statement string    `json:"statement"`
	RowTitles []string  `json:"row_titles"`
	Columns   []string  `json:"columns"`
	Rows      []jsonRow `json:"rows"`
	Percent   bool      `json:"percent,omitempty"`
}

type jsonRow struct {
	Labels []string            `json:"labels"`
	Values map[string]*float64 `json:"values"`
	Total  bool                `json:"total,omitempty"`
}

func writeJSON(f *os.File, title string, table *model.StatementTable) error {
	out := jsonStatement{
		Statement: title,
		RowTitles: table.RowTitles,
		Percent:   table.Percent,
	}
	for _, c := range table.Columns {
		out.Columns = append(out.Columns, c.String())
	}

	for i := range table.Rows {
		row := jsonRow{Total: table.Rows[i].IsTotal, Values: make(map[string]*float64)}
		for _, cell := range table.Rows[i].Cells {
			row.Labels = append(row.Labels, cell.Label)
		}
		for _, col := range table.Columns {
			if v, ok := table.Value(i, col); ok {
				value := v
				row.Values[col.String()] = &value
			} else {
				row.Values[col.String()] = nil
			}
		}
		out.Rows = append(out.Rows, row)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
