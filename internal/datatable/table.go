package datatable

import (
	"fmt"
	"io"
	"strconv"
	"sync"
)

// DefaultIDKey is the row key used for row identity when Options.IDKey is empty.
const DefaultIDKey = "id"

// Options wires caller behavior into a Table.
type Options struct {
	// IDKey names the identity field of each row (default "id").
	IDKey string

	OnView   RowHandler
	OnEdit   RowHandler
	OnDelete RowHandler

	// CustomActions replaces the default view/edit/delete set when non-nil.
	CustomActions func(row Row) []Action

	// OnExport replaces the default CSV export when non-nil.
	OnExport ExportFunc

	// OnFilterChange is notified by SetFilter when a column filter changes.
	OnFilterChange func(key string, value FilterValue)

	// DisableActions keeps every action in the layout but makes it inert.
	DisableActions bool

	// ShowEdit renders the edit action. View and delete are unaffected.
	ShowEdit bool

	// Classes overrides action button classes.
	Classes ActionClasses
}

// Header is one rendered column header.
type Header struct {
	Key       string    `json:"key"`
	Label     string    `json:"label"`
	Sortable  bool      `json:"sortable"`
	Sorted    bool      `json:"sorted"`
	Direction Direction `json:"direction,omitempty"`
}

// RenderedRow is one visible row: its identity, the original row object, the
// formatted cells in column order and its bound actions. Keyed is false when
// the row has no identity value and ID is positional.
type RenderedRow struct {
	ID      string   `json:"id"`
	Keyed   bool     `json:"keyed"`
	Row     Row      `json:"-"`
	Cells   []Cell   `json:"cells"`
	Actions []Action `json:"-"`
}

// View is the result of rendering a table for one ViewState.
type View struct {
	State        ViewState     `json:"state"`
	Columns      []Column      `json:"-"`
	Headers      []Header      `json:"headers"`
	Rows         []RenderedRow `json:"rows"`
	Page         Page          `json:"pagination"`
	HasActions   bool          `json:"hasActions"`
	EmptyColSpan int           `json:"emptyColSpan"`
	TotalRows    int           `json:"totalRows"` // snapshot size before search/filter
}

// Table binds an immutable column registry and caller options to a
// replaceable row snapshot.
type Table struct {
	registry *Registry
	opts     Options

	mu   sync.RWMutex
	data []Row
}

// New creates a Table. The columns are validated and copied; data is not
// copied and is never modified.
func New(columns []Column, data []Row, opts Options) (*Table, error) {
	reg, err := NewRegistry(columns)
	if err != nil {
		return nil, fmt.Errorf("new table: %w", err)
	}
	if opts.IDKey == "" {
		opts.IDKey = DefaultIDKey
	}
	return &Table{registry: reg, opts: opts, data: data}, nil
}

// Columns returns the caller columns in order.
func (t *Table) Columns() []Column {
	return t.registry.Columns()
}

// Registry returns the table's column registry.
func (t *Table) Registry() *Registry {
	return t.registry
}

// HasActions reports whether the synthesized actions column is present.
func (t *Table) HasActions() bool {
	return t.opts.hasActions()
}

// SetData replaces the row snapshot. View state held by callers is not
// touched; the next render clamps the page to the new row count.
func (t *Table) SetData(rows []Row) {
	t.mu.Lock()
	t.data = rows
	t.mu.Unlock()
}

// Data returns the current snapshot.
func (t *Table) Data() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.data
}

// Filtered runs sort, search and column filters: the row set used for both
// pagination and export.
func (t *Table) Filtered(state ViewState) []Row {
	cols := t.registry.columns
	rows := Sort(t.Data(), state.Sort)
	rows = Search(rows, state.Filter.SearchTerm, cols)
	return ApplyFilters(rows, state.Filter.Active, cols)
}

// Render runs the full pipeline and formats the visible page.
func (t *Table) Render(state ViewState) View {
	filtered := t.Filtered(state)
	state = state.Clamp(len(filtered))
	page := Paginate(filtered, state.Page)

	cols := t.registry.Columns()
	view := View{
		State:        state,
		Columns:      cols,
		Headers:      t.headers(state.Sort),
		Page:         page,
		HasActions:   t.HasActions(),
		EmptyColSpan: len(cols),
		TotalRows:    len(t.Data()),
	}
	if view.HasActions {
		view.EmptyColSpan++
	}

	view.Rows = make([]RenderedRow, len(page.Rows))
	offset := (page.Number - 1) * page.PageSize
	for i, row := range page.Rows {
		cells := make([]Cell, len(cols))
		for j, col := range cols {
			cells[j] = col.Render.Render(row[col.Key], row)
		}
		id, keyed := t.rowID(row, offset+i)
		view.Rows[i] = RenderedRow{
			ID:      id,
			Keyed:   keyed,
			Row:     row,
			Cells:   cells,
			Actions: t.opts.rowActions(row),
		}
	}
	return view
}

func (t *Table) headers(s SortState) []Header {
	cols := t.registry.columns
	headers := make([]Header, 0, len(cols)+1)
	for _, col := range cols {
		h := Header{Key: col.Key, Label: col.Label(), Sortable: true}
		if s.Key == col.Key {
			h.Sorted = true
			h.Direction = s.Direction
		}
		headers = append(headers, h)
	}
	if t.HasActions() {
		headers = append(headers, Header{Key: ActionsKey, Label: "Actions"})
	}
	return headers
}

// rowID returns the row's identity value, or "#<position>" and false when
// the row has none. Positional ids are not stable across sort or search
// changes, and RowByID never resolves them.
func (t *Table) rowID(row Row, position int) (string, bool) {
	if id := FormatValue(row[t.opts.IDKey]); id != "" {
		return id, true
	}
	return "#" + strconv.Itoa(position), false
}

// Export hands the filtered, unpaginated rows to Options.OnExport, or writes
// them to w as CSV when no exporter is configured.
func (t *Table) Export(w io.Writer, state ViewState) error {
	rows := t.Filtered(state)
	if t.opts.OnExport != nil {
		return t.opts.OnExport(rows)
	}
	return WriteCSV(w, rows, t.registry.columns)
}

// Dispatch invokes the action of the given kind on the row at index of a
// rendered view. The handler receives the exact row object shown on that
// page.
func (t *Table) Dispatch(view View, index int, kind ActionKind) error {
	if index < 0 || index >= len(view.Rows) {
		return fmt.Errorf("dispatch %s at %d: %w", kind, index, ErrRowNotFound)
	}
	action, ok := findAction(view.Rows[index].Actions, kind)
	if !ok {
		return fmt.Errorf("dispatch %s: %w", kind, ErrUnknownAction)
	}
	return action.Invoke()
}

// DispatchByID renders state and invokes the action on the visible row with
// the given identity. Rows that are not on the rendered page cannot be
// targeted.
func (t *Table) DispatchByID(state ViewState, id string, kind ActionKind) error {
	view := t.Render(state)
	for i, r := range view.Rows {
		if r.ID == id {
			return t.Dispatch(view, i, kind)
		}
	}
	return fmt.Errorf("dispatch %s on %q: %w", kind, id, ErrRowNotFound)
}

// RowByID looks a row up in the snapshot by its identity value.
func (t *Table) RowByID(id string) (Row, bool) {
	for _, row := range t.Data() {
		if FormatValue(row[t.opts.IDKey]) == id {
			return row, true
		}
	}
	return nil, false
}

// ToggleSort applies a header click on key. Keys that are not columns of
// this table leave the state unchanged.
func (t *Table) ToggleSort(state ViewState, key string) ViewState {
	if _, ok := t.registry.Lookup(key); !ok {
		return state
	}
	return state.ToggleSort(key)
}

// SetFilter applies a filter widget change to state and notifies
// Options.OnFilterChange.
func (t *Table) SetFilter(state ViewState, key string, value FilterValue) ViewState {
	next := state.WithFilter(key, value)
	if t.opts.OnFilterChange != nil {
		t.opts.OnFilterChange(key, value)
	}
	return next
}
