package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMigrations_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dialect := sqlite.Dialect{}
	log := discardLogger()

	var out bytes.Buffer
	require.NoError(t, handleMigrations(ctx, db, dialect, "up", &out, log))

	out.Reset()
	require.NoError(t, handleMigrations(ctx, db, dialect, "version", &out, log))
	assert.Equal(t, "2\n", out.String())

	out.Reset()
	require.NoError(t, handleMigrations(ctx, db, dialect, "status", &out, log))
	assert.Contains(t, out.String(), "VERSION")
	assert.Contains(t, out.String(), "00001_create_users.sql")
	assert.Contains(t, out.String(), "00002_create_tasks.sql")

	require.NoError(t, handleMigrations(ctx, db, dialect, "down", &out, log))
	out.Reset()
	require.NoError(t, handleMigrations(ctx, db, dialect, "version", &out, log))
	assert.Equal(t, "1\n", out.String())
}

func TestHandleMigrations_UnknownCommand(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = handleMigrations(ctx, db, sqlite.Dialect{}, "create", &bytes.Buffer{}, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration command")
}
