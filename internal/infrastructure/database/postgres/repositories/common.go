// Package repositories contains the PostgreSQL-backed implementations of
// the domain repository interfaces.
package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier abstracts *pgxpool.Pool and pgx.Tx so repositories run inside or
// outside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// beginner is satisfied by *pgxpool.Pool.
type beginner interface {
	querier
	Begin(ctx context.Context) (pgx.Tx, error)
}
