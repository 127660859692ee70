package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository provides the query helpers shared by table repositories
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// QueryRow executes a query that expects a single row result
func (r *Repository) QueryRow(ctx context.Context, query string, args ...any) *sqlx.Row {
	return r.db.QueryRowxContext(ctx, query, args...)
}

// Select selects multiple rows into a slice destination
func (r *Repository) Select(ctx context.Context, dest any, query string, args ...any) error {
	return r.db.SelectContext(ctx, dest, query, args...)
}

// Error wraps repository errors with context
func (r *Repository) Error(op string, err error) error {
	return fmt.Errorf("repository %s: %w", op, err)
}
