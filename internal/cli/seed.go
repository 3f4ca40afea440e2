package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/salesdesk/internal/admin"
	"github.com/JonMunkholm/salesdesk/internal/store"
)

func newSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		clients int
		seed    uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all rows with generated demo data",
		Long: `Create the tables if needed and replace their contents with demo data.
The same --seed always produces the same rows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := rootOpts.open(ctx, cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.source.Migrate(ctx); err != nil {
				return err
			}
			reset := &admin.ResetDemo{Store: e.source, Clients: clients, Seed: seed}
			n, err := reset.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d records (%d clients) into %s\n", n, clients, e.cfg.Database.Driver)
			return nil
		},
	}
	cmd.Flags().IntVar(&clients, "clients", store.DefaultSeedClients, "number of demo clients; other tables scale with it")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")

	return cmd
}
