// Package application is the terminal front end: a menu of screens and a
// Bubble Tea browser over one screen's table. All sorting, searching and
// paging goes through the view engine; this package only maps keys to
// ViewState transitions and draws the rendered view.
package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
	"github.com/JonMunkholm/salesdesk/internal/export"
)

// CommandTimeout bounds the database work of a single key press.
var CommandTimeout = 30 * time.Second

// Screens is the part of core.Service the terminal front end uses.
type Screens interface {
	ListScreensByGroup() map[string][]core.ScreenInfo
	Open(ctx context.Context, key string, hooks core.Hooks) (*datatable.Table, core.ScreenDefinition, error)
	Reload(ctx context.Context, key string, table *datatable.Table) error
}

// Options configures exports and the optional reset entry of the menu.
type Options struct {
	ExportDir string
	Format    export.Format
	SheetName string

	// Reset, when set, adds a menu entry that reloads the demo data.
	Reset func() tea.Cmd

	// Now stamps export file names; defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.ExportDir == "" {
		o.ExportDir = "."
	}
	if o.Format == "" {
		o.Format = export.CSV
	}
	if o.SheetName == "" {
		o.SheetName = export.DefaultSheetName
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// viewSlot receives the row the view action fired on.
type viewSlot struct{ row datatable.Row }

// Browser pages through one screen.
type Browser struct {
	screens Screens
	opts    Options
	keys    keyMap

	def   core.ScreenDefinition
	table *datatable.Table
	state datatable.ViewState
	view  datatable.View

	cursor int // row on the current page
	column int // column the sort key acts on

	search     textinput.Model
	searching  bool
	confirming bool

	viewed *viewSlot
	detail datatable.Row

	status string
	err    error
}

// NewBrowser opens a screen. The screen's default sort applies.
func NewBrowser(ctx context.Context, screens Screens, key string, opts Options) (Browser, error) {
	viewed := &viewSlot{}
	table, def, err := screens.Open(ctx, key, core.Hooks{
		OnView: func(row datatable.Row) error {
			viewed.row = row
			return nil
		},
	})
	if err != nil {
		return Browser{}, err
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search all columns"
	search.CharLimit = 120

	state := datatable.NewViewState()
	if def.Info.DefaultSort.Key != "" {
		state = state.WithSort(def.Info.DefaultSort.Key, def.Info.DefaultSort.Direction)
	}

	b := Browser{
		screens: screens,
		opts:    opts.withDefaults(),
		keys:    defaultKeys(),
		def:     def,
		table:   table,
		state:   state,
		search:  search,
		viewed:  viewed,
	}
	b.render()
	return b, nil
}

// Init implements tea.Model.
func (b Browser) Init() tea.Cmd { return nil }

// State returns the current view state.
func (b Browser) State() datatable.ViewState { return b.state }

// RenderedView returns the last rendered table view.
func (b Browser) RenderedView() datatable.View { return b.view }

// render re-runs the pipeline and keeps the cursor on the page.
func (b *Browser) render() {
	b.view = b.table.Render(b.state)
	b.state = b.view.State
	if b.cursor >= len(b.view.Rows) {
		b.cursor = len(b.view.Rows) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

// apply moves to a new state and resets the cursor.
func (b *Browser) apply(state datatable.ViewState) {
	b.state = state
	b.cursor = 0
	b.render()
}

// Update implements tea.Model.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reloadedMsg:
		b.render()
		b.status, b.err = msg.status, nil
		return b, nil
	case DoneMsg:
		b.status, b.err = string(msg), nil
		return b, nil
	case ErrMsg:
		b.err = msg.Err
		return b, nil
	case tea.KeyMsg:
		if b.searching {
			return b.updateSearch(msg)
		}
		if b.confirming {
			return b.updateConfirm(msg)
		}
		return b.updateKeys(msg)
	}
	return b, nil
}

func (b Browser) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		b.searching = false
		b.search.Blur()
		b.apply(b.state.WithSearch(b.search.Value()))
		return b, nil
	case tea.KeyEsc:
		b.searching = false
		b.search.Blur()
		b.search.SetValue(b.state.Filter.SearchTerm)
		return b, nil
	}
	var cmd tea.Cmd
	b.search, cmd = b.search.Update(msg)
	return b, cmd
}

func (b Browser) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b.confirming = false
	if !key.Matches(msg, b.keys.Confirm) {
		b.status = "Delete cancelled"
		return b, nil
	}
	b.status = "Deleting..."
	return b, b.deleteCmd()
}

func (b Browser) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if b.detail != nil {
		if key.Matches(msg, b.keys.Back, b.keys.View) {
			b.detail = nil
			return b, nil
		}
		if key.Matches(msg, b.keys.Quit) {
			return b, tea.Quit
		}
		return b, nil
	}

	switch {
	case key.Matches(msg, b.keys.Quit):
		return b, tea.Quit
	case key.Matches(msg, b.keys.Back):
		return b, func() tea.Msg { return backMsg{} }
	case key.Matches(msg, b.keys.Up):
		if b.cursor > 0 {
			b.cursor--
		}
	case key.Matches(msg, b.keys.Down):
		if b.cursor < len(b.view.Rows)-1 {
			b.cursor++
		}
	case key.Matches(msg, b.keys.Left):
		if b.column > 0 {
			b.column--
		}
	case key.Matches(msg, b.keys.Right):
		if b.column < len(b.view.Columns)-1 {
			b.column++
		}
	case key.Matches(msg, b.keys.Sort):
		if b.column < len(b.view.Columns) {
			b.apply(b.table.ToggleSort(b.state, b.view.Columns[b.column].Key))
		}
	case key.Matches(msg, b.keys.NextPage):
		b.apply(b.state.GoToPage(b.view.Page.Number + 1))
	case key.Matches(msg, b.keys.PrevPage):
		b.apply(b.state.GoToPage(b.view.Page.Number - 1))
	case key.Matches(msg, b.keys.First):
		b.apply(b.state.GoToPage(1))
	case key.Matches(msg, b.keys.Last):
		b.apply(b.state.GoToPage(b.view.Page.TotalPages))
	case key.Matches(msg, b.keys.Search):
		b.searching = true
		b.search.SetValue(b.state.Filter.SearchTerm)
		b.search.CursorEnd()
		return b, b.search.Focus()
	case key.Matches(msg, b.keys.Clear):
		b.search.SetValue("")
		b.apply(b.state.WithSearch("").ClearFilters())
	case key.Matches(msg, b.keys.View):
		b.viewRow()
	case key.Matches(msg, b.keys.Delete):
		b.askDelete()
	case key.Matches(msg, b.keys.Export):
		b.status = "Exporting..."
		return b, b.exportCmd()
	case key.Matches(msg, b.keys.Reload):
		return b, b.reloadCmd("Reloaded")
	}
	return b, nil
}

// viewRow fires the view action on the cursor row and shows the row it
// received.
func (b *Browser) viewRow() {
	if len(b.view.Rows) == 0 {
		return
	}
	b.viewed.row = nil
	if err := b.table.Dispatch(b.view, b.cursor, datatable.ActionView); err != nil {
		b.err = err
		return
	}
	b.detail = b.viewed.row
}

func (b *Browser) askDelete() {
	if len(b.view.Rows) == 0 {
		return
	}
	row := b.view.Rows[b.cursor]
	for _, a := range row.Actions {
		if a.Kind != datatable.ActionDelete {
			continue
		}
		if a.Disabled {
			b.status = "Actions are disabled"
			return
		}
		b.confirming = true
		b.status = fmt.Sprintf("Delete %s? (y/n)", row.ID)
		return
	}
	b.status = b.def.Info.Label + " is read-only"
}

// deleteCmd dispatches the delete action on the cursor row of the rendered
// view and reloads the snapshot.
func (b Browser) deleteCmd() tea.Cmd {
	table, view, index := b.table, b.view, b.cursor
	screens, key := b.screens, b.def.Info.Key
	id := view.Rows[index].ID

	return func() tea.Msg {
		if err := table.Dispatch(view, index, datatable.ActionDelete); err != nil {
			return ErrMsg{Err: fmt.Errorf("delete %s: %w", id, err)}
		}
		ctx, cancel := context.WithTimeout(context.Background(), CommandTimeout)
		defer cancel()
		if err := screens.Reload(ctx, key, table); err != nil {
			return ErrMsg{Err: err}
		}
		return reloadedMsg{status: "Deleted " + id}
	}
}

func (b Browser) reloadCmd(status string) tea.Cmd {
	table, screens, key := b.table, b.screens, b.def.Info.Key
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), CommandTimeout)
		defer cancel()
		if err := screens.Reload(ctx, key, table); err != nil {
			return ErrMsg{Err: err}
		}
		return reloadedMsg{status: status}
	}
}

// exportCmd writes the filtered rows under the current state to a file in
// the export directory.
func (b Browser) exportCmd() tea.Cmd {
	table, state, def, opts := b.table, b.state, b.def, b.opts
	path := filepath.Join(opts.ExportDir, opts.Format.Filename(def.Info.Key, opts.Now()))

	return func() tea.Msg {
		n, err := writeExport(path, table, state, def.Columns, opts)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DoneMsg(fmt.Sprintf("Exported %d rows to %s", n, path))
	}
}

func writeExport(path string, table *datatable.Table, state datatable.ViewState, columns []datatable.Column, opts Options) (n int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	rows := table.Filtered(state)
	if opts.Format == export.XLSX {
		err = export.WriteXLSX(f, rows, columns, opts.SheetName)
	} else {
		err = datatable.WriteCSV(f, rows, columns)
	}
	return len(rows), err
}
