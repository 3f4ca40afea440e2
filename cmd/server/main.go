package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/salesdesk/internal/config"
	"github.com/JonMunkholm/salesdesk/internal/core"
	_ "github.com/JonMunkholm/salesdesk/internal/core/screens" // Register built-in screens
	"github.com/JonMunkholm/salesdesk/internal/logging"
	"github.com/JonMunkholm/salesdesk/internal/store"
	"github.com/JonMunkholm/salesdesk/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"read_only", cfg.Screens.ReadOnly,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Screens from the YAML catalog are added to the built-in ones
	if path := cfg.Screens.CatalogPath; path != "" {
		n, err := core.LoadCatalogFile(path)
		if err != nil {
			slog.Error("failed to load screen catalog", "path", path, "error", err)
			os.Exit(1)
		}
		slog.Info("screen catalog loaded", "path", path, "screens", n)
	}

	// Connect to database
	ctx := context.Background()
	source, err := store.Open(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer source.Close()

	// Log which database we connected to
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		slog.Info("connected to database", "driver", cfg.Database.Driver, "name", store.DatabaseName(cfg.Database.URL))
	default:
		slog.Info("connected to database", "driver", cfg.Database.Driver, "path", cfg.Database.SQLitePath)
	}

	service := core.NewService(source, core.ServiceConfig{
		ReadOnly:     cfg.Screens.ReadOnly,
		MaxRows:      cfg.Screens.MaxRows,
		QueryTimeout: cfg.Database.QueryTimeout,
	})

	// Log registered screens
	slog.Info("screens registered",
		"count", core.ScreenCount(),
		"groups", len(core.Groups()),
	)
	for _, group := range core.Groups() {
		slog.Debug("screen group", "group", group, "screens", len(core.ByGroup(group)))
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
