// Package repository holds the SQL for stations, connectors and ingestion
// batches. Write methods take a Querier so the loader controls transaction
// boundaries; *sql.DB and *sql.Tx both satisfy it.
package repository

import (
	"context"
	"database/sql"
)

// Querier is the execution handle shared by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
