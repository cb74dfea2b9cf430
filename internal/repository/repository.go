// Package repository handles all interactions with the database.
//
// It contains parameter-bound SQL statements and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the part of a pgx connection the repositories use.
//
// *pgxpool.Pool, pgx.Tx and pgxmock all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
