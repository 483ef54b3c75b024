package loader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	_ "github.com/go-sql-driver/mysql"  // mysql driver
	_ "github.com/jackc/pgx/v5/stdlib"  // postgres driver
	_ "github.com/marcboeker/go-duckdb" // duckdb driver
	_ "github.com/microsoft/go-mssqldb" // sqlserver driver
	_ "modernc.org/sqlite"              // sqlite driver

	"github.com/leapstack-labs/gridlint/pkg/grid"
)

// drivers maps source types to database/sql driver names.
var drivers = map[string]string{
	"sqlite":     "sqlite",
	"sqlite3":    "sqlite",
	"duckdb":     "duckdb",
	"postgres":   "pgx",
	"postgresql": "pgx",
	"pgx":        "pgx",
	"mysql":      "mysql",
	"sqlserver":  "sqlserver",
	"mssql":      "sqlserver",
}

// ListDrivers returns the accepted source types, sorted.
func ListDrivers() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownDriverError is returned when a source type has no driver.
type UnknownDriverError struct {
	Driver    string
	Available []string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("unknown source driver %q\nAvailable drivers: %v\nHint: Check source.driver in gridlint.yaml", e.Driver, e.Available)
}

// ErrNoQuery is returned when a SQL source has no query.
var ErrNoQuery = errors.New("source query is required")

// SQLSource reads a grid from the result of a SQL query. Column names form
// the header row and NULL values become empty cells.
type SQLSource struct {
	Driver string
	DSN    string
	Query  string
	Logger *slog.Logger
}

// DriverName resolves the database/sql driver for the source type.
func (s SQLSource) DriverName() (string, error) {
	name, ok := drivers[strings.ToLower(strings.TrimSpace(s.Driver))]
	if !ok {
		return "", &UnknownDriverError{Driver: s.Driver, Available: ListDrivers()}
	}
	return name, nil
}

// Load opens the database, runs the query, and closes the connection.
func (s SQLSource) Load(ctx context.Context) (*grid.Grid, error) {
	if strings.TrimSpace(s.Query) == "" {
		return nil, ErrNoQuery
	}
	driver, err := s.DriverName()
	if err != nil {
		return nil, err
	}

	s.logger().Debug("opening sql source", slog.String("driver", driver))
	db, err := sql.Open(driver, s.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", s.Driver, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping %s: %w", s.Driver, err)
	}
	return s.LoadDB(ctx, db)
}

// LoadDB runs the query on an open database.
func (s SQLSource) LoadDB(ctx context.Context, db *sql.DB) (*grid.Grid, error) {
	if strings.TrimSpace(s.Query) == "" {
		return nil, ErrNoQuery
	}

	rows, err := db.QueryContext(ctx, s.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	out := [][]any{toAny(cols)}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	s.logger().Debug("sql source loaded", slog.Int("rows", len(out)-1), slog.Int("cols", len(cols)))
	return grid.FromValues(out), nil
}

func (s SQLSource) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
