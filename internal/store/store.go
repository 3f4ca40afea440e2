// Package store provides the row sources behind the screens: PostgreSQL via
// a pgx pool and SQLite via the pure-Go modernc driver. Both return rows as
// datatable.Row with values normalized to Go natives.
package store

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/salesdesk/internal/config"
	"github.com/JonMunkholm/salesdesk/internal/core"
)

//go:embed schema.sql
var schemaSQL string

// Source is a core.RowSource that owns its connection.
type Source interface {
	core.RowSource

	// Migrate creates the tables behind the built-in screens.
	Migrate(ctx context.Context) error

	// Seed replaces the contents of each record's table with the records.
	Seed(ctx context.Context, records []Record) error

	Close() error
}

// Open connects to the row source selected by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Source, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pg, err := OpenPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case config.DriverSQLite:
		lite, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return lite, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Record is one row destined for a table.
type Record struct {
	Table  string
	Values map[string]any
}

// quoteIdent quotes a table or column name. Both PostgreSQL and SQLite
// accept double-quoted identifiers.
func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func selectSQL(q core.SnapshotQuery) (string, error) {
	if q.Table == "" {
		return "", fmt.Errorf("snapshot: empty table")
	}
	cols := "*"
	if len(q.Columns) > 0 {
		quoted := make([]string, len(q.Columns))
		for i, c := range q.Columns {
			quoted[i] = quoteIdent(c)
		}
		cols = strings.Join(quoted, ", ")
	}
	stmt := "SELECT " + cols + " FROM " + quoteIdent(q.Table)
	if q.Limit > 0 {
		stmt += fmt.Sprintf(" LIMIT %d", q.Limit)
	}
	return stmt, nil
}

// normalize converts driver-specific values to the natives the view engine
// compares and formats.
func normalize(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case [16]byte:
		return uuid.UUID(val).String()
	case int32:
		return int64(val)
	case int:
		return int64(val)
	case float32:
		return float64(val)
	case time.Time:
		return val.UTC()
	}
	return v
}

// recordColumns returns the column names of a record in a stable order.
func recordColumns(r Record) []string {
	cols := make([]string, 0, len(r.Values))
	for c := range r.Values {
		cols = append(cols, c)
	}
	slices.Sort(cols)
	return cols
}

// groupRecords splits records by table, keeping first-seen table order.
func groupRecords(records []Record) ([]string, map[string][]Record) {
	var order []string
	byTable := make(map[string][]Record)
	for _, r := range records {
		if _, ok := byTable[r.Table]; !ok {
			order = append(order, r.Table)
		}
		byTable[r.Table] = append(byTable[r.Table], r)
	}
	return order, byTable
}
