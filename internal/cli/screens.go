package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// ScreenRow is one line of the screens listing.
type ScreenRow struct {
	Key      string `json:"key"`
	Group    string `json:"group"`
	Label    string `json:"label"`
	Rows     int64  `json:"rows"`
	ReadOnly bool   `json:"readOnly"`
	Error    string `json:"error,omitempty"`
}

func newScreensCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "screens",
		Short: "List screens with their row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreens(cmd, rootOpts)
		},
	}
}

func runScreens(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()
	e, err := opts.open(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	stats := e.service.Stats(ctx)
	rows := make([]ScreenRow, len(stats))
	for i, s := range stats {
		rows[i] = ScreenRow{
			Key:      s.Info.Key,
			Group:    s.Info.Group,
			Label:    s.Info.Label,
			Rows:     s.Rows,
			ReadOnly: s.Info.ReadOnly,
			Error:    s.Error,
		}
	}

	if opts.JSON {
		return writeJSON(cmd.OutOrStdout(), rows)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KEY", "GROUP", "LABEL", "ROWS")
	for _, r := range rows {
		count := strconv.FormatInt(r.Rows, 10)
		if r.Error != "" {
			count = "error"
		}
		label := r.Label
		if r.ReadOnly {
			label += " (read-only)"
		}
		t.Row(r.Key, r.Group, label, count)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return err
}
