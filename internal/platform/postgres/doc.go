// Package postgres provides SQL-backed implementations of the store
// interfaces using the pgx driver through database/sql. The same code path
// serves the analytics database (source relations, sync sink) and the
// upstream operational database (incremental reads).
package postgres
