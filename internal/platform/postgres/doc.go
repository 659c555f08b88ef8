// Package postgres provides the PostgreSQL backend: connection setup through
// the pgx stdlib driver, the sqlstore.Dialect for Postgres, the mapping of
// PostgreSQL error codes onto store errors, and the embedded schema migrations.
package postgres
