package sqlite

import (
	"embed"
	"io/fs"

	sq "github.com/Masterminds/squirrel"
	"github.com/phrazzld/tasks-api/internal/platform/sqlstore"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Dialect is the sqlstore.Dialect for SQLite.
type Dialect struct{}

var _ sqlstore.Dialect = Dialect{}

// Name implements sqlstore.Dialect.
func (Dialect) Name() string { return DriverName }

// Placeholder implements sqlstore.Dialect. SQLite binds ?.
func (Dialect) Placeholder() sq.PlaceholderFormat { return sq.Question }

// Lower implements sqlstore.Dialect with the registered LowerFunc.
func (Dialect) Lower(column string) string { return LowerFunc + "(" + column + ")" }

// MapError implements sqlstore.Dialect.
func (Dialect) MapError(err error) error { return MapError(err) }

// GooseDialect implements sqlstore.Dialect.
func (Dialect) GooseDialect() goose.Dialect { return goose.DialectSQLite3 }

// Migrations implements sqlstore.Dialect.
func (Dialect) Migrations() (fs.FS, error) { return fs.Sub(migrationFiles, "migrations") }
