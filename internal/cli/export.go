package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/salesdesk/internal/core"
	"github.com/JonMunkholm/salesdesk/internal/export"
)

type exportOptions struct {
	viewFlags
	Format string
	Output string
}

func newExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <screen>",
		Short: "Export the filtered rows of a screen to CSV or Excel",
		Long: `Export every row that matches the search and filters, ignoring pagination.

Without -o the file is named <screen>_<epoch-millis>.<ext> in the current
directory; -o - writes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, rootOpts, opts, args[0])
		},
	}
	opts.register(cmd, false)
	cmd.Flags().StringVar(&opts.Format, "format", "", "csv or xlsx (default EXPORT_FORMAT)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file, - for stdout")

	return cmd
}

func runExport(cmd *cobra.Command, rootOpts *RootOptions, opts *exportOptions, key string) error {
	ctx := cmd.Context()
	e, err := rootOpts.open(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	format, err := export.ParseFormat(opts.Format, export.Format(e.cfg.Export.DefaultFormat))
	if err != nil {
		return err
	}

	def, err := e.service.Screen(key)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table, _, err := e.service.Open(ctx, key, core.Hooks{
		OnExport:       export.Exporter(format, &buf, def.Columns, e.cfg.Export.SheetName),
		OnFilterChange: filterHook(key),
	})
	if err != nil {
		return err
	}

	state, err := opts.state(table, def)
	if err != nil {
		return err
	}
	if err := table.Export(&buf, state); err != nil {
		return fmt.Errorf("export %s: %w", key, err)
	}

	path := opts.Output
	if path == "" {
		path = format.Filename(key, time.Now())
	}
	if path == "-" {
		_, err := io.Copy(cmd.OutOrStdout(), &buf)
		return err
	}

	size := buf.Len()
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	slog.Info("export written", "screen", key, "format", format, "path", path, "bytes", size)
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", def.Info.Label, path)
	return nil
}
