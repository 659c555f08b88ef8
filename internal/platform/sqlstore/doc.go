// Package sqlstore implements store.UserStore and store.TaskStore on top of
// database/sql. Queries are built with squirrel so the same code serves every
// backend; a Dialect supplies the placeholder format, the driver error mapping,
// and the embedded migrations.
package sqlstore
