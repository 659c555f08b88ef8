package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/platform/sqlstore"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 10 * time.Second

// OpenSQLite opens a private in-memory SQLite database with all migrations
// applied. The database is closed when the test finishes.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlite.Open(ctx, sqlite.MemoryURL)
	require.NoError(t, err, "Failed to open in-memory SQLite database")
	t.Cleanup(func() { _ = db.Close() })

	migrate(t, ctx, db, sqlite.Dialect{})
	return db
}

// OpenPostgres connects to the database named by TASKS_TEST_DATABASE_URL,
// applies migrations, and empties all tables before and after the test.
// The test is skipped when the variable is not set.
func OpenPostgres(t testing.TB) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		t.Skipf("%s not set, skipping PostgreSQL test", DatabaseURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, url, postgres.PoolConfig{MaxOpenConns: 4})
	require.NoError(t, err, "Failed to connect to PostgreSQL")

	migrate(t, ctx, db, postgres.Dialect{})
	truncate(t, db)

	t.Cleanup(func() {
		truncate(t, db)
		_ = db.Close()
	})
	return db
}

// WithTx executes fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

func migrate(t testing.TB, ctx context.Context, db *sql.DB, dialect sqlstore.Dialect) {
	t.Helper()

	migrator, err := sqlstore.NewMigrator(db, dialect, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, migrator.Up(ctx), "Failed to run migrations")
}

func truncate(t testing.TB, db *sql.DB) {
	t.Helper()

	_, err := db.Exec("TRUNCATE TABLE tasks, users CASCADE")
	require.NoError(t, err, "Failed to truncate tables")
}
