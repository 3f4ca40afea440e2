package core

import (
	"context"
	"net/url"
	"strings"

	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

// DefaultIDColumn is the identity column used when a screen does not name one.
const DefaultIDColumn = "id"

// ScreenInfo describes one list screen.
type ScreenInfo struct {
	Key      string `json:"key"`                // Unique identifier: "opportunities"
	Group    string `json:"group"`              // Navigation group: "Sales", "Delivery", "Admin"
	Label    string `json:"label"`              // Display name: "Opportunities"
	Table    string `json:"-"`                  // Backing table in the row source
	IDColumn string `json:"idColumn,omitempty"` // Identity column (default "id")

	// EditPath is the edit form URL with "{id}" standing in for the row id.
	// Empty hides the edit action.
	EditPath string `json:"editPath,omitempty"`

	// ReadOnly screens have no delete action and reject deletes.
	ReadOnly bool `json:"readOnly"`

	// DefaultSort is applied when a request carries no sort.
	DefaultSort datatable.SortState `json:"defaultSort"`
}

// ScreenDefinition is a screen plus its column registry.
type ScreenDefinition struct {
	Info    ScreenInfo
	Columns []datatable.Column
}

// IDColumn returns the identity column, falling back to DefaultIDColumn.
func (d ScreenDefinition) IDColumn() string {
	if d.Info.IDColumn == "" {
		return DefaultIDColumn
	}
	return d.Info.IDColumn
}

// EditURL returns the edit link for a row id, or "" when the screen has none.
// The id is path-escaped into the {id} placeholder.
func (d ScreenDefinition) EditURL(id string) string {
	if d.Info.EditPath == "" {
		return ""
	}
	return strings.ReplaceAll(d.Info.EditPath, "{id}", url.PathEscape(id))
}

// SelectColumns returns the identity column followed by every column key,
// without duplicates.
func (d ScreenDefinition) SelectColumns() []string {
	id := d.IDColumn()
	cols := make([]string, 0, len(d.Columns)+1)
	cols = append(cols, id)
	for _, c := range d.Columns {
		if c.Key != id {
			cols = append(cols, c.Key)
		}
	}
	return cols
}

// SnapshotQuery asks a RowSource for the rows of one screen.
type SnapshotQuery struct {
	Table   string
	Columns []string
	Limit   int // 0 means no limit
}

// RowSource loads row snapshots and performs row-level mutations.
// Implementations return values as Go natives (string, int64, float64, bool,
// time.Time, nil).
type RowSource interface {
	Rows(ctx context.Context, q SnapshotQuery) ([]datatable.Row, error)
	Count(ctx context.Context, table string) (int64, error)
	Delete(ctx context.Context, table, idColumn, id string) error
}

// Hooks are the host-specific parts of a table's options. The service adds
// delete wiring, edit visibility and read-only handling on top.
type Hooks struct {
	OnView         datatable.RowHandler
	OnEdit         datatable.RowHandler
	OnExport       datatable.ExportFunc
	OnFilterChange func(key string, value datatable.FilterValue)
	Classes        datatable.ActionClasses
}

// ScreenStats is one dashboard entry.
type ScreenStats struct {
	Info  ScreenInfo
	Rows  int64
	Error string // Non-empty if the count failed
}
