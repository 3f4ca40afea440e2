package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/salesdesk/internal/config"
	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

// Postgres is a RowSource backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres parses cfg.URL, applies the pool settings and verifies the
// connection.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// NewPostgres wraps an existing pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// DatabaseName returns the database name from a connection URL, for logging.
func DatabaseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

// Rows runs the snapshot query and returns every row as a datatable.Row keyed
// by column name.
func (p *Postgres) Rows(ctx context.Context, q core.SnapshotQuery) ([]datatable.Row, error) {
	stmt, err := selectSQL(q)
	if err != nil {
		return nil, err
	}

	rows, err := p.pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var result []datatable.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", q.Table, err)
		}
		row := make(datatable.Row, len(fields))
		for i, f := range fields {
			row[f.Name] = normalizePg(values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", q.Table, err)
	}
	return result, nil
}

// normalizePg handles the pgtype values rows.Values() can return before
// falling back to the shared normalization.
func normalizePg(v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		if !val.Valid {
			return nil
		}
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case pgtype.UUID:
		if !val.Valid {
			return nil
		}
		return normalize(val.Bytes)
	}
	return normalize(v)
}

// Count returns the number of rows in table.
func (p *Postgres) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := p.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+quoteIdent(table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// Delete removes the row whose idColumn matches id. The comparison is done on
// the text form so uuid, integer and text ids all work.
func (p *Postgres) Delete(ctx context.Context, table, idColumn, id string) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE %s::text = $1", quoteIdent(table), quoteIdent(idColumn))
	tag, err := p.pool.Exec(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete from %s: %w", table, core.ErrRowNotFound)
	}
	return nil
}

// Migrate creates the screen tables if they do not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Seed truncates each table named by records and bulk-loads the records with
// COPY, all in one transaction.
func (p *Postgres) Seed(ctx context.Context, records []Record) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback(ctx)

	order, byTable := groupRecords(records)
	for _, table := range order {
		if _, err := tx.Exec(ctx, "TRUNCATE "+quoteIdent(table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}

		recs := byTable[table]
		cols := recordColumns(recs[0])
		src := pgx.CopyFromSlice(len(recs), func(i int) ([]any, error) {
			vals := make([]any, len(cols))
			for j, c := range cols {
				vals[j] = recs[i].Values[c]
			}
			return vals, nil
		})
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{table}, cols, src); err != nil {
			return fmt.Errorf("copy into %s: %w", table, err)
		}
	}
	return tx.Commit(ctx)
}

// Close closes the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
