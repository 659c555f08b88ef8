// Package testdb provides utilities specifically for database testing.
//
// OpenSQLite gives every test its own migrated in-memory database, so store
// tests run without any external service. OpenPostgres runs the same schema
// against a real PostgreSQL server when TASKS_TEST_DATABASE_URL is set.
package testdb
