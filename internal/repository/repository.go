// Package repository handles all interactions with the database.
//
// It contains the SQL and the methods that fetch, persist and update rows,
// returning *errs.HTTPError values for every expected failure (missing
// rows, duplicates, invalid input) so callers never see driver errors.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// DBTX is the query handle repositories run on. Both *pgxpool.Pool and
// pgx.Tx satisfy it; on a pgx.Tx, Begin opens a savepoint, so a repository
// built on a test transaction still rolls back cleanly.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PasswordHasher is the one-way hashing collaborator.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// storageError converts err into an application error. Causes that end up
// as a 500 are logged here since the conversion drops them.
func storageError(log *zerolog.Logger, op string, err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	mapped := sqlerr.HandleError(err)
	if errs.StatusCode(mapped) >= 500 {
		log.Error().Err(err).Str("operation", op).Msg("database operation failed")
	}
	return mapped
}
