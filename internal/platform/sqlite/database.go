package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// DriverName is the configuration name of this backend.
const DriverName = "sqlite"

// MemoryURL opens a private in-memory database.
const MemoryURL = ":memory:"

// Open opens the SQLite database at path (or MemoryURL) with foreign keys
// enforced. File databases also use WAL journaling.
//
// SQLite allows a single writer, so the pool is pinned to one connection that
// is never recycled; for in-memory databases that connection is the database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", buildDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func buildDSN(path string) string {
	pragmas := []string{"_pragma=foreign_keys(1)", "_pragma=busy_timeout(5000)"}

	path = strings.TrimPrefix(path, "file:")
	if path == "" || path == MemoryURL {
		return "file::memory:?" + strings.Join(pragmas, "&")
	}

	pragmas = append(pragmas, "_pragma=journal_mode(WAL)")
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + strings.Join(pragmas, "&")
}
