package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

// SQLite is a RowSource backed by a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// SQLite has a single writer, and every connection to ":memory:" is a
	// separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// DB returns the underlying handle.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Rows runs the snapshot query and returns every row as a datatable.Row.
func (s *SQLite) Rows(ctx context.Context, q core.SnapshotQuery) ([]datatable.Row, error) {
	stmt, err := selectSQL(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read %s columns: %w", q.Table, err)
	}

	var result []datatable.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("read %s: %w", q.Table, err)
		}
		row := make(datatable.Row, len(cols))
		for i, c := range cols {
			row[c] = normalize(values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", q.Table, err)
	}
	return result, nil
}

// Count returns the number of rows in table.
func (s *SQLite) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// Delete removes the row whose idColumn matches id.
func (s *SQLite) Delete(ctx context.Context, table, idColumn, id string) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE CAST(%s AS TEXT) = ?", quoteIdent(table), quoteIdent(idColumn))
	res, err := s.db.ExecContext(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n == 0 {
		return fmt.Errorf("delete from %s: %w", table, core.ErrRowNotFound)
	}
	return nil
}

// Migrate creates the screen tables if they do not exist.
func (s *SQLite) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Seed clears each table named by records and inserts the records in one
// transaction.
func (s *SQLite) Seed(ctx context.Context, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	order, byTable := groupRecords(records)
	for _, table := range order {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+quoteIdent(table)); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}

		recs := byTable[table]
		cols := recordColumns(recs[0])
		stmt, err := tx.PrepareContext(ctx, insertSQL(table, cols))
		if err != nil {
			return fmt.Errorf("prepare insert into %s: %w", table, err)
		}
		for i, r := range recs {
			args := make([]any, len(cols))
			for j, c := range cols {
				args[j] = sqliteValue(r.Values[c])
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				stmt.Close()
				return fmt.Errorf("insert into %s row %d: %w", table, i+1, err)
			}
		}
		stmt.Close()
	}
	return tx.Commit()
}

func insertSQL(table string, cols []string) string {
	stmt := "INSERT INTO " + quoteIdent(table) + " ("
	params := ""
	for i, c := range cols {
		if i > 0 {
			stmt += ", "
			params += ", "
		}
		stmt += quoteIdent(c)
		params += "?"
	}
	return stmt + ") VALUES (" + params + ")"
}

// sqliteValue stores dates as ISO text so they sort and parse back cleanly.
func sqliteValue(v any) any {
	t, ok := v.(time.Time)
	if !ok {
		return v
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.UTC().Format(time.RFC3339)
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
