package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool the stores use.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}
