package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/datatable"
)

// viewFlags are the table state flags shared by view and export.
type viewFlags struct {
	Sort    string
	Desc    bool
	Search  string
	Filters []string
	Page    int
}

func (f *viewFlags) register(cmd *cobra.Command, withPage bool) {
	cmd.Flags().StringVar(&f.Sort, "sort", "", "column to sort by (default: the screen's default sort)")
	cmd.Flags().BoolVar(&f.Desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&f.Search, "search", "", "case-insensitive search over all columns")
	cmd.Flags().StringArrayVar(&f.Filters, "filter", nil, "column filter col=op:value (repeatable)")
	if withPage {
		cmd.Flags().IntVar(&f.Page, "page", 1, "page number")
	}
}

// state builds the view state the flags describe. Filters go through
// Table.SetFilter so the filter hook sees them.
func (f *viewFlags) state(table *datatable.Table, def core.ScreenDefinition) (datatable.ViewState, error) {
	state := datatable.NewViewState()
	switch {
	case f.Sort != "":
		dir := datatable.Asc
		if f.Desc {
			dir = datatable.Desc
		}
		state = state.WithSort(f.Sort, dir)
	case def.Info.DefaultSort.Key != "":
		state = state.WithSort(def.Info.DefaultSort.Key, def.Info.DefaultSort.Direction)
	}

	state = state.WithSearch(f.Search)

	for _, raw := range f.Filters {
		key, expr, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return state, fmt.Errorf("invalid filter %q: want col=op:value", raw)
		}
		fv, ok := datatable.ParseFilterValue(expr)
		if !ok {
			return state, fmt.Errorf("invalid filter %q: want col=op:value", raw)
		}
		state = table.SetFilter(state, key, fv)
	}

	return state.GoToPage(f.Page), nil
}

func filterHook(screen string) func(string, datatable.FilterValue) {
	return func(key string, fv datatable.FilterValue) {
		slog.Debug("filter applied", "screen", screen, "column", key, "filter", fv.String())
	}
}

func newViewCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &viewFlags{}

	cmd := &cobra.Command{
		Use:   "view <screen>",
		Short: "Print one page of a screen",
		Long: `Print one page of a screen after sorting, searching and filtering.

Filters use the same operators as the web UI, for example:

  salesdesk view opportunities --filter stage=eq:Proposal --filter amount=gte:50000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, rootOpts, flags, args[0])
		},
	}
	flags.register(cmd, true)

	return cmd
}

func runView(cmd *cobra.Command, opts *RootOptions, flags *viewFlags, key string) error {
	ctx := cmd.Context()
	e, err := opts.open(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	table, def, err := e.service.Open(ctx, key, core.Hooks{OnFilterChange: filterHook(key)})
	if err != nil {
		return err
	}

	state, err := flags.state(table, def)
	if err != nil {
		return err
	}
	view := table.Render(state)

	if opts.JSON {
		return writeJSON(cmd.OutOrStdout(), view)
	}
	return printView(cmd.OutOrStdout(), def, view)
}

// printView draws the page as a bordered table followed by the pager line.
func printView(w io.Writer, def core.ScreenDefinition, view datatable.View) error {
	headers := make([]string, 0, len(view.Columns)+1)
	headers = append(headers, "ID")
	for _, h := range view.Headers {
		if h.Key == datatable.ActionsKey {
			continue
		}
		label := h.Label
		if h.Sorted {
			label += " (" + string(h.Direction) + ")"
		}
		headers = append(headers, label)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, r := range view.Rows {
		cells := make([]string, 0, len(r.Cells)+1)
		cells = append(cells, r.ID)
		for _, c := range r.Cells {
			cells = append(cells, c.Text)
		}
		t.Row(cells...)
	}

	fmt.Fprintln(w, def.Info.Label)
	fmt.Fprintln(w, t.String())
	if len(view.Rows) == 0 {
		fmt.Fprintln(w, "No records found")
	}

	p := view.Page
	summary := fmt.Sprintf("Page %d of %d, showing %d to %d of %d", p.Number, p.TotalPages, p.Start, p.End, p.TotalRows)
	if p.TotalRows != view.TotalRows {
		summary += fmt.Sprintf(" (filtered from %d)", view.TotalRows)
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
