package core

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/salesdesk/internal/datatable"
	"github.com/JonMunkholm/salesdesk/internal/logging"
)

// Snapshot loads the current rows of a screen, coerced to the column types.
func (s *Service) Snapshot(ctx context.Context, key string) ([]datatable.Row, error) {
	def, err := s.Screen(key)
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, def)
}

func (s *Service) snapshot(ctx context.Context, def ScreenDefinition) ([]datatable.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	start := time.Now()
	rows, err := s.source.Rows(ctx, SnapshotQuery{
		Table:   def.Info.Table,
		Columns: def.SelectColumns(),
		Limit:   s.cfg.MaxRows,
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", def.Info.Key, err)
	}

	logging.ForScreen(ctx, def.Info.Key).Debug("snapshot loaded",
		"rows", len(rows),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if s.cfg.MaxRows > 0 && len(rows) >= s.cfg.MaxRows {
		logging.ForScreen(ctx, def.Info.Key).Warn("snapshot truncated", "max_rows", s.cfg.MaxRows)
	}

	return CoerceRows(rows, def.Columns), nil
}

// Open loads a screen's snapshot and returns a table wired with the host's
// hooks. Delete is bound to the row source unless the screen is read-only;
// edit is offered only when the screen has an edit path. ctx is captured by
// the delete handler, so a table opened for a request must not outlive it.
func (s *Service) Open(ctx context.Context, key string, hooks Hooks) (*datatable.Table, ScreenDefinition, error) {
	def, err := s.Screen(key)
	if err != nil {
		return nil, ScreenDefinition{}, err
	}

	rows, err := s.snapshot(ctx, def)
	if err != nil {
		return nil, def, err
	}

	table, err := datatable.New(def.Columns, rows, s.options(ctx, def, hooks))
	if err != nil {
		return nil, def, fmt.Errorf("open %s: %w", key, err)
	}
	return table, def, nil
}

// Reload replaces a table's snapshot with fresh rows.
func (s *Service) Reload(ctx context.Context, key string, table *datatable.Table) error {
	rows, err := s.Snapshot(ctx, key)
	if err != nil {
		return err
	}
	table.SetData(rows)
	return nil
}

func (s *Service) options(ctx context.Context, def ScreenDefinition, hooks Hooks) datatable.Options {
	opts := datatable.Options{
		IDKey:          def.IDColumn(),
		OnView:         hooks.OnView,
		OnExport:       hooks.OnExport,
		OnFilterChange: hooks.OnFilterChange,
		Classes:        hooks.Classes,
		DisableActions: s.cfg.ReadOnly,
	}
	if def.Info.EditPath != "" && hooks.OnEdit != nil {
		opts.OnEdit = hooks.OnEdit
		opts.ShowEdit = true
	}
	if !def.Info.ReadOnly {
		opts.OnDelete = func(row datatable.Row) error {
			return s.deleteRow(ctx, def, datatable.FormatValue(row[def.IDColumn()]))
		}
	}
	return opts
}

// Stats counts the rows behind every screen. A failed count is reported on
// the entry rather than failing the whole dashboard.
func (s *Service) Stats(ctx context.Context) []ScreenStats {
	defs := All()
	stats := make([]ScreenStats, len(defs))
	for i, def := range defs {
		stats[i].Info = def.Info

		countCtx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
		n, err := s.source.Count(countCtx, def.Info.Table)
		cancel()
		if err != nil {
			logging.ForScreen(ctx, def.Info.Key).Warn("count failed", "error", err)
			stats[i].Error = FormatUserError(err)
			continue
		}
		stats[i].Rows = n
	}
	return stats
}
