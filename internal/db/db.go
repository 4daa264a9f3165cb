// Package db provides PostgreSQL data access for the Rolodex.
package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// DefaultListLimit applies when a list call does not set a limit.
const DefaultListLimit = 100

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping verifies the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Migrate applies the embedded schema. Every statement is idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// NotFoundError is returned by updates and deletes that matched no row
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ConflictError is returned when a write violates a unique constraint,
// e.g. a second pipeline entry for the same contact
type ConflictError struct {
	Entity     string
	Constraint string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists (%s)", e.Entity, e.Constraint)
}

// ReferenceError is returned when a write references a row that does not exist
type ReferenceError struct {
	Entity     string
	Constraint string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s references a missing record (%s)", e.Entity, e.Constraint)
}

// Postgres SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// classify maps constraint violations to typed errors; other errors are
// wrapped with msg.
func classify(err error, entity, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &ConflictError{Entity: entity, Constraint: pgErr.ConstraintName}
		case pgForeignKeyViolation:
			return &ReferenceError{Entity: entity, Constraint: pgErr.ConstraintName}
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// page returns the LIMIT clause for a list query, plus OFFSET when offset is positive.
func (w *whereClause) page(limit, offset int) string {
	l := w.next(listLimit(limit))
	if offset <= 0 {
		return ` LIMIT ` + l
	}
	return ` LIMIT ` + l + ` OFFSET ` + w.next(offset)
}

// CollectPages calls fetch with increasing offsets until a page comes back
// shorter than pageSize, and returns every row in fetch order.
func CollectPages[T any](ctx context.Context, pageSize int, fetch func(ctx context.Context, limit, offset int) ([]T, error)) ([]T, error) {
	if pageSize <= 0 {
		pageSize = DefaultListLimit
	}
	all := []T{}
	for offset := 0; ; offset += pageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := fetch(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

// whereClause accumulates optional filters in the "WHERE 1=1 AND ..." style
type whereClause struct {
	sql  string
	args []any
}

func newWhere() *whereClause {
	return &whereClause{sql: " WHERE 1=1"}
}

// add appends a condition; "?" in cond is replaced with the next positional arg.
func (w *whereClause) add(cond string, arg any) {
	w.args = append(w.args, arg)
	n := len(w.args)
	w.sql += " AND " + replacePlaceholder(cond, n)
}

// next returns the placeholder for an argument appended after the filters.
func (w *whereClause) next(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

func replacePlaceholder(cond string, n int) string {
	return strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", n))
}
