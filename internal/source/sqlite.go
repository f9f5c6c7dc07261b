package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sazfar/finrep/internal/common"
	"github.com/sazfar/finrep/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteSource reads the reporting workbook from a SQLite file holding one
// table per workbook sheet: gl, coa, territory, calendar, pnl_structure,
// bs_structure, cf_structure. The workbook is read-only; all computation
// happens in memory.
type SQLiteSource struct {
	db   *sql.DB
	path string
}

// NewSQLiteSource opens the workbook file.
func NewSQLiteSource(path string) (*SQLiteSource, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: workbook path", common.ErrMissingConfig)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrSourceNotFound, path)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping workbook: %w", err)
	}

	return &SQLiteSource{db: db, path: path}, nil
}

// Path returns the workbook file path.
func (s *SQLiteSource) Path() string {
	return s.path
}

// Close closes the workbook connection.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Load reads every workbook table into a Dataset.
func (s *SQLiteSource) Load(ctx context.Context) (*model.Dataset, error) {
	ds := &model.Dataset{}
	var err error

	if ds.Ledger, err = s.loadLedger(ctx); err != nil {
		return nil, tableError("gl", err)
	}
	if ds.Accounts, err = s.loadAccounts(ctx); err != nil {
		return nil, tableError("coa", err)
	}
	if ds.Territories, err = s.loadTerritories(ctx); err != nil {
		return nil, tableError("territory", err)
	}
	if ds.Calendar, err = s.loadCalendar(ctx); err != nil {
		return nil, tableError("calendar", err)
	}
	if ds.ProfitAndLoss, err = s.loadStructure(ctx, "pnl_structure"); err != nil {
		return nil, tableError("pnl_structure", err)
	}
	if ds.BalanceSheet, err = s.loadStructure(ctx, "bs_structure"); err != nil {
		return nil, tableError("bs_structure", err)
	}
	if ds.CashFlow, err = s.loadCashFlowStructure(ctx); err != nil {
		return nil, tableError("cf_structure", err)
	}

	return ds, nil
}

// tableError maps SQLite's "no such table" to the workbook error taxonomy.
func tableError(table string, err error) error {
	if strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("%w: %s", common.ErrMissingTable, table)
	}
	return fmt.Errorf("loading %s: %w", table, err)
}

func (s *SQLiteSource) loadLedger(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT account_key, territory_key, date, amount FROM gl
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var date string
		if err := rows.Scan(&t.AccountKey, &t.TerritoryKey, &date, &t.Amount); err != nil {
			return nil, err
		}
		if t.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteSource) loadAccounts(ctx context.Context) ([]model.ChartAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT account_key, account, class, sub_class, sub_class2 FROM coa
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.ChartAccount
	for rows.Next() {
		var a model.ChartAccount
		var name, class, subClass, subClass2 sql.NullString
		if err := rows.Scan(&a.AccountKey, &name, &class, &subClass, &subClass2); err != nil {
			return nil, err
		}
		a.Name = name.String
		a.Class = class.String
		a.SubClass = subClass.String
		a.SubClass2 = subClass2.String
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteSource) loadTerritories(ctx context.Context) ([]model.Territory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT territory_key, region, country FROM territory
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Territory
	for rows.Next() {
		var t model.Territory
		var region, country sql.NullString
		if err := rows.Scan(&t.TerritoryKey, &region, &country); err != nil {
			return nil, err
		}
		t.Region = region.String
		t.Country = country.String
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteSource) loadCalendar(ctx context.Context) ([]model.CalendarDay, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, year FROM calendar
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.CalendarDay
	for rows.Next() {
		var d model.CalendarDay
		var date string
		if err := rows.Scan(&date, &d.Year); err != nil {
			return nil, err
		}
		if d.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLiteSource) loadStructure(ctx context.Context, table string) ([]model.StructureEntry, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT account_key,
		       class, class_sort_key, calculated_class_name,
		       sub_class, sub_class_sort_key, calculated_sub_class_name,
		       sub_class2, sub_class2_sort_key, calculated_sub_class2_name,
		       account, account_sort_key, calculated_account_name,
		       is_calculated
		FROM %s
	`, table))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.StructureEntry
	for rows.Next() {
		var key string
		var calculated bool
		names := make([]sql.NullString, 4)
		ranks := make([]sql.NullInt64, 4)
		calcNames := make([]sql.NullString, 4)

		if err := rows.Scan(&key,
			&names[0], &ranks[0], &calcNames[0],
			&names[1], &ranks[1], &calcNames[1],
			&names[2], &ranks[2], &calcNames[2],
			&names[3], &ranks[3], &calcNames[3],
			&calculated); err != nil {
			return nil, err
		}

		entry := model.StructureEntry{
			AccountKey:   key,
			IsCalculated: calculated,
			Levels:       make(map[model.Level]model.LevelMapping, 4),
		}
		for i, level := range model.LevelOrder {
			entry.Levels[level] = model.LevelMapping{
				Name:           names[i].String,
				CalculatedName: calcNames[i].String,
				Rank:           nullRank(ranks[i]),
			}
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *SQLiteSource) loadCashFlowStructure(ctx context.Context) ([]model.CashFlowMapping, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT account_key, type, sub_type, sub_type_sort_key,
		       calculated_sub_type_name, is_calculated, value_type, account
		FROM cf_structure
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.CashFlowMapping
	for rows.Next() {
		var m model.CashFlowMapping
		var rank sql.NullInt64
		var calcName sql.NullString
		var valueType string
		if err := rows.Scan(&m.AccountKey, &m.Type, &m.SubType, &rank,
			&calcName, &m.IsCalculated, &valueType, &m.Account); err != nil {
			return nil, err
		}
		m.SubTypeRank = nullRank(rank)
		m.CalculatedName = calcName.String
		m.ValueType = model.ValueType(valueType)
		out = append(out, m)
	}
	return out, rows.Err()
}

func nullRank(v sql.NullInt64) int {
	if !v.Valid {
		return model.RankMissing
	}
	return int(v.Int64)
}

// dateFormats are the layouts workbook date columns may use.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
