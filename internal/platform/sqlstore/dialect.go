package sqlstore

import (
	"io/fs"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
)

// Dialect captures what differs between the supported SQL backends.
// Everything else about the stores is shared.
type Dialect interface {
	// Name is the configuration name of the backend ("postgres", "sqlite").
	Name() string

	// Placeholder is the bind-parameter style used when building queries.
	Placeholder() sq.PlaceholderFormat

	// Lower wraps a column in the backend's Unicode-aware lowercase
	// function. Search terms are lowercased with strings.ToLower to match.
	Lower(column string) string

	// MapError translates driver errors into store sentinel errors
	// (store.ErrDuplicate, store.ErrInvalidEntity, store.ErrNotFound).
	// Errors without a mapping are returned unchanged.
	MapError(err error) error

	// GooseDialect identifies the backend to the migration runner.
	GooseDialect() goose.Dialect

	// Migrations returns the backend's SQL migration files at the root of the FS.
	Migrations() (fs.FS, error)
}
