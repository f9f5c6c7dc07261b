package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sazfar/finrep/internal/common"
	"github.com/sazfar/finrep/internal/model"
	"github.com/sazfar/finrep/internal/render"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer exports statement tables to Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets statement writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// WriteStatement writes one statement table to its own sheet, replacing
// any previous contents.
func (w *Writer) WriteStatement(ctx context.Context, title string, table *model.StatementTable) error {
	w.logger.Info("exporting statement",
		"statement", title,
		"rows", len(table.Rows),
		"columns", len(table.Columns))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if err := w.ensureSheet(ctx, spreadsheetID, title); err != nil {
		return fmt.Errorf("failed to prepare sheet: %w", err)
	}

	if err := w.clearSheet(ctx, spreadsheetID, title); err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}

	values := statementValues(table)

	retryOpts := common.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, title, values)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	w.logger.Info("statement exported",
		"spreadsheet_id", spreadsheetID,
		"statement", title,
		"rows_written", len(values))
	return nil
}

// statementValues flattens a statement table into sheet rows: one header
// row (row titles then column headers), then one row per statement line.
// Missing cells become the display placeholder; percentage tables export
// their rendered form.
func statementValues(table *model.StatementTable) [][]any {
	values := make([][]any, 0, len(table.Rows)+1)

	header := make([]any, 0, len(table.RowTitles)+len(table.Columns))
	for _, t := range table.RowTitles {
		header = append(header, t)
	}
	for _, c := range table.Columns {
		header = append(header, c.String())
	}
	values = append(values, header)

	for i := range table.Rows {
		row := make([]any, 0, len(header))
		for _, cell := range table.Rows[i].Cells {
			row = append(row, cell.Label)
		}
		for _, col := range table.Columns {
			v, ok := table.Value(i, col)
			switch {
			case !ok:
				row = append(row, render.Placeholder)
			case table.Percent:
				row = append(row, render.Percent(v))
			default:
				row = append(row, v)
			}
		}
		values = append(values, row)
	}

	return values
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet gets an existing spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	// Remember the ID so later statements land in the same spreadsheet.
	w.config.SpreadsheetID = created.SpreadsheetId

	return created.SpreadsheetId, nil
}

// ensureSheet adds a sheet with the given title if it doesn't exist.
func (w *Writer) ensureSheet(ctx context.Context, spreadsheetID, title string) error {
	spreadsheet, err := w.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return err
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}
	_, err = w.service.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	return err
}

// clearSheet clears all data from the statement's sheet.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID, title string) error {
	rangeRef := fmt.Sprintf("'%s'!A:ZZ", title)
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, rangeRef, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// writeData writes rows in batches, with progress feedback.
func (w *Writer) writeData(ctx context.Context, spreadsheetID, title string, values [][]any) error {
	bar := progressbar.NewOptions(len(values),
		progressbar.OptionSetDescription(fmt.Sprintf("Exporting %s", title)),
		progressbar.OptionClearOnFinish(),
	)

	for start := 0; start < len(values); start += w.config.BatchSize {
		end := start + w.config.BatchSize
		if end > len(values) {
			end = len(values)
		}

		rangeRef := fmt.Sprintf("'%s'!A%d", title, start+1)
		valueRange := &sheets.ValueRange{Values: values[start:end]}

		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeRef, valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", start+1, err)
		}

		_ = bar.Add(end - start)
	}

	_ = bar.Finish()
	return nil
}
