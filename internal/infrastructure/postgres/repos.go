package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when the referenced row does not exist.
var ErrNotFound = errors.New("not found")

// rowExecutor is the subset of pgxpool.Pool / pgx.Tx the repositories need.
type rowExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// executor prefers the transaction from context over the pool.
func executor(ctx context.Context, pool *pgxpool.Pool) rowExecutor {
	if tx := GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}

func nullIfEmptyText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
