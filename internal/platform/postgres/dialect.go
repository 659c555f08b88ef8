package postgres

import (
	"embed"
	"io/fs"

	sq "github.com/Masterminds/squirrel"
	"github.com/phrazzld/tasks-api/internal/platform/sqlstore"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Dialect is the sqlstore.Dialect for PostgreSQL.
type Dialect struct{}

var _ sqlstore.Dialect = Dialect{}

// Name implements sqlstore.Dialect.
func (Dialect) Name() string { return DriverName }

// Placeholder implements sqlstore.Dialect. Postgres binds $1, $2, ...
func (Dialect) Placeholder() sq.PlaceholderFormat { return sq.Dollar }

// Lower implements sqlstore.Dialect. Postgres LOWER follows the database
// collation, which folds non-ASCII letters under UTF-8 locales.
func (Dialect) Lower(column string) string { return "LOWER(" + column + ")" }

// MapError implements sqlstore.Dialect.
func (Dialect) MapError(err error) error { return MapError(err) }

// GooseDialect implements sqlstore.Dialect.
func (Dialect) GooseDialect() goose.Dialect { return goose.DialectPostgres }

// Migrations implements sqlstore.Dialect.
func (Dialect) Migrations() (fs.FS, error) { return fs.Sub(migrationFiles, "migrations") }
