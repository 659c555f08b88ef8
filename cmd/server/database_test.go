package main

import (
	"context"
	"testing"

	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupAppDatabase(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		cfg := testConfig()

		db, dialect, err := setupAppDatabase(context.Background(), cfg, discardLogger())
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		assert.Equal(t, sqlite.DriverName, dialect.Name())
		assert.NoError(t, db.Ping())
	})

	t.Run("unsupported driver", func(t *testing.T) {
		cfg := testConfig()
		cfg.Database.Driver = "mysql"

		db, dialect, err := setupAppDatabase(context.Background(), cfg, discardLogger())
		require.Error(t, err)
		assert.Nil(t, db)
		assert.Nil(t, dialect)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})
}

func TestNewApplication_InvalidAuthConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = "short"

	db, dialect, err := setupAppDatabase(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	app, err := newApplication(cfg, discardLogger(), db, dialect)
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "JWT service")
}
