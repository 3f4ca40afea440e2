package cli

import (
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/salesdesk/internal/admin"
	"github.com/JonMunkholm/salesdesk/internal/application"
	"github.com/JonMunkholm/salesdesk/internal/export"
)

func newBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		exportDir  string
		allowReset bool
	)

	cmd := &cobra.Command{
		Use:   "browse [screen]",
		Short: "Browse screens in the terminal",
		Long: `Open the terminal browser. With a screen key the screen opens directly;
otherwise a menu of screens is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := rootOpts.open(ctx, cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			opts := application.Options{
				ExportDir: exportDir,
				Format:    export.Format(e.cfg.Export.DefaultFormat),
				SheetName: e.cfg.Export.SheetName,
			}
			if allowReset {
				reset := &admin.ResetDemo{Store: e.source}
				opts.Reset = reset.ResetAll
			}

			var key string
			if len(args) == 1 {
				key = args[0]
			}
			return application.Run(ctx, e.service, key, opts)
		},
	}
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory for exports started with x")
	cmd.Flags().BoolVar(&allowReset, "allow-reset", false, "offer a menu entry that replaces all rows with demo data")

	return cmd
}
