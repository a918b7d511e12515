// Package storage provides the PostgreSQL storage layer for papyrus.
//
// It manages connection pooling via pgxpool, read queries for the articles
// table, the single-transaction bulk insert used by the seed command, and a
// dev-mode migration runner over an embedded filesystem.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgxpool.Pool the storage layer uses. Tests
// substitute a pgxmock pool through the same interface.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// DB wraps a connection pool with the query methods the API needs.
// Pool acquisition and release are scoped inside each method, so every
// request-path call leaves the pool balanced regardless of outcome.
type DB struct {
	pool   Querier
	logger *slog.Logger
}

// New creates a DB backed by a real pgx connection pool and verifies
// connectivity before returning.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("storage: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: ping pool: %w", err)
	}

	return &DB{pool: pool, logger: logger}, nil
}

// NewWithPool creates a DB around an existing pool. Used by tests.
func NewWithPool(pool Querier, logger *slog.Logger) *DB {
	return &DB{pool: pool, logger: logger}
}

// Ping checks connectivity to the database.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (db *DB) Close() {
	db.pool.Close()
}
