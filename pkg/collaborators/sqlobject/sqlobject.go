// Package sqlobject is an example DataObject backed by a SQL query: it
// reports both a "sql" representation (the query can be pushed further
// down) and a "rows" representation (the query has already been
// executed and materialized as an iterator), mirroring the
// specialized-versus-general fallback the kernel is built to dispatch
// across.
package sqlobject

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go driver registered under "sqlite"
)

// SQLObject wraps a query against a *sql.DB. Representations prefers
// "sql" (let an implementation push work into the database) over
// "rows" (already-materialized row iteration).
type SQLObject struct {
	db    *sql.DB
	query string
	args  []any
}

// Open opens a modernc.org/sqlite-backed database at dsn. Callers are
// responsible for closing the returned *sql.DB.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return db, nil
}

// New wraps a query (and its bind arguments) against db.
func New(db *sql.DB, query string, args ...any) *SQLObject {
	return &SQLObject{db: db, query: query, args: args}
}

// Representations reports this object's preference order: push the
// query into the database before falling back to row iteration.
func (o *SQLObject) Representations() []string {
	return []string{"sql", "rows"}
}

// SQL exposes the underlying database handle and the query text, for
// an implementation that wants to push work further into the
// database (e.g. wrap the query instead of running it as-is).
func (o *SQLObject) SQL() (*sql.DB, string, []any) {
	return o.db, o.query, o.args
}

// Rows executes the query and returns the resulting row iterator, the
// "rows" representation.
func (o *SQLObject) Rows() (*sql.Rows, error) {
	rows, err := o.db.Query(o.query, o.args...)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	return rows, nil
}
