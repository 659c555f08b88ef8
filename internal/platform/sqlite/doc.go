// Package sqlite provides the embedded SQLite backend used for local
// development and tests. It wraps the pure-Go modernc.org/sqlite driver.
package sqlite
