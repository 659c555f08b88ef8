// Package main implements the entry point for the tasks API server, a
// multi-user task tracker with username/password authentication.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
)

// main is the entry point for the tasks-api server.
// It loads configuration, sets up logging, connects to the database, and
// then either runs a migration command or serves HTTP until signalled.
func main() {
	migrateCmd := flag.String("migrate", "", "Run a migration command and exit: up, down, status, version")
	migrateOnStart := flag.Bool("migrate-on-start", false, "Apply pending migrations before serving")
	configPath := flag.String("config", "", "Path to a config file (defaults to ./config.yaml when present)")
	flag.Parse()

	if err := run(context.Background(), *configPath, *migrateCmd, *migrateOnStart); err != nil {
		log.Fatalf("tasks-api: %v", err)
	}
}

// run wires the application together. It is separate from main so every
// error path returns instead of exiting.
func run(ctx context.Context, configPath, migrateCmd string, migrateOnStart bool) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	db, dialect, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing database connection", "error", err)
			}
		}()
		return handleMigrations(ctx, db, dialect, migrateCmd, os.Stdout, logger)
	}

	if migrateOnStart {
		if err := handleMigrations(ctx, db, dialect, "up", os.Stdout, logger); err != nil {
			_ = db.Close()
			return err
		}
	}

	app, err := newApplication(cfg, logger, db, dialect)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	slog.Info("Starting tasks-api", "driver", dialect.Name(), "port", cfg.Server.Port)
	return app.Run(ctx)
}
