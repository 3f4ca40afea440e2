// Package cli implements the salesdesk command line: listing screens,
// printing and exporting table views, the terminal browser and demo data.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/salesdesk/internal/config"
	"github.com/JonMunkholm/salesdesk/internal/core"
	_ "github.com/JonMunkholm/salesdesk/internal/core/screens" // register built-in screens
	"github.com/JonMunkholm/salesdesk/internal/logging"
	"github.com/JonMunkholm/salesdesk/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DB      string
	Driver  string
	Catalog string
	JSON    bool

	// Getenv is the configuration source the flags are layered over.
	Getenv config.LookupFunc
}

// NewRootCommand creates the root command for the salesdesk CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{Getenv: os.Getenv})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salesdesk",
		Short: "Browse, filter and export sales CRM tables",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Driver {
			case "", config.DriverPostgres, config.DriverSQLite:
				return nil
			default:
				return fmt.Errorf("invalid driver %q: must be %s or %s", opts.Driver, config.DriverPostgres, config.DriverSQLite)
			}
		},
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "SQLite file or Postgres URL (overrides SQLITE_PATH / DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "database driver (postgres|sqlite)")
	cmd.PersistentFlags().StringVar(&opts.Catalog, "catalog", "", "YAML screen catalog to load")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "print JSON instead of a table")

	// Add subcommands
	cmd.AddCommand(newScreensCommand(opts))
	cmd.AddCommand(newViewCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newBrowseCommand(opts))
	cmd.AddCommand(newSeedCommand(opts))

	return cmd
}

// overrides maps the global flags onto configuration names. A --db value
// that looks like a URL selects Postgres unless --driver says otherwise.
func (o *RootOptions) overrides() map[string]string {
	m := map[string]string{
		"DB_DRIVER":       o.Driver,
		"SCREENS_CATALOG": o.Catalog,
	}
	if o.DB == "" {
		return m
	}
	isURL := strings.HasPrefix(o.DB, "postgres://") || strings.HasPrefix(o.DB, "postgresql://")
	if o.Driver == "" {
		if isURL {
			m["DB_DRIVER"] = config.DriverPostgres
		} else {
			m["DB_DRIVER"] = config.DriverSQLite
		}
	}
	if m["DB_DRIVER"] == config.DriverPostgres {
		m["DATABASE_URL"] = o.DB
	} else {
		m["SQLITE_PATH"] = o.DB
	}
	return m
}

// loadConfig layers the flags over the environment and sets up logging on
// stderr so table output stays clean.
func (o *RootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	getenv := o.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg, err := config.LoadWith(config.Overlay(getenv, o.overrides()))
	if err != nil {
		return nil, err
	}
	logging.SetupTo(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

// env is everything a command needs to work on screens.
type env struct {
	cfg     *config.Config
	source  store.Source
	service *core.Service
}

func (e *env) Close() error {
	return e.source.Close()
}

// open loads configuration, registers catalog screens and connects to the
// row source.
func (o *RootOptions) open(ctx context.Context, cmd *cobra.Command) (*env, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if path := cfg.Screens.CatalogPath; path != "" {
		n, err := core.LoadCatalogFile(path)
		if err != nil {
			return nil, err
		}
		slog.Debug("catalog loaded", "path", path, "screens", n)
	}

	source, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Database.Driver, err)
	}

	return &env{
		cfg:     cfg,
		source:  source,
		service: core.NewService(source, serviceConfig(cfg)),
	}, nil
}

func serviceConfig(cfg *config.Config) core.ServiceConfig {
	return core.ServiceConfig{
		ReadOnly:     cfg.Screens.ReadOnly,
		MaxRows:      cfg.Screens.MaxRows,
		QueryTimeout: cfg.Database.QueryTimeout,
	}
}
