package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/phrazzld/tasks-api/internal/platform/sqlstore"
)

// handleMigrations executes a migration command against db.
// status and version print their result to out.
func handleMigrations(
	ctx context.Context,
	db *sql.DB,
	dialect sqlstore.Dialect,
	command string,
	out io.Writer,
	logger *slog.Logger,
) error {
	migrator, err := sqlstore.NewMigrator(db, dialect, logger)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	logger.Info("Executing migrations", "command", command, "driver", dialect.Name())

	switch command {
	case "up":
		return migrator.Up(ctx)
	case "down":
		return migrator.Down(ctx)
	case "status":
		statuses, err := migrator.Status(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tSOURCE")
		for _, s := range statuses {
			appliedAt := "-"
			if !s.AppliedAt.IsZero() {
				appliedAt = s.AppliedAt.UTC().Format(time.RFC3339)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, appliedAt, s.Source.Path)
		}
		return tw.Flush()
	case "version":
		version, err := migrator.Version(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%d\n", version)
		return err
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, status or version)", command)
	}
}
