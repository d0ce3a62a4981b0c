package errors

// Postgres helpers: SQLSTATE inspection for the pg KV backend

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrReadOnlySQLTx    = "25006"
	pgErrCannotConnectNow = "57P03"
	pgErrSerialization    = "40001"
	pgErrDeadlock         = "40P01"
	pgErrTooManyConns     = "53300"

	// class 08 is connection exceptions
	pgClassConnection = "08"
)

// ExtractPgError returns the *pgconn.PgError at the root of err, if any
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether err is a Postgres error with the given SQLSTATE
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// FromPostgres wraps a pg error as storage, or unavailable when the server is refusing work
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrReadOnlySQLTx, pgErrCannotConnectNow:
			return Wrap(err, ErrorCodeUnavailable, msg)
		}
	}
	return Wrap(err, ErrorCodeStorage, msg)
}

// IsRetryable reports whether err is a Postgres error that may succeed when
// the same work is tried again. Non-pg errors report false
func IsRetryable(err error) bool {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return false
	}
	switch pgErr.Code {
	case pgErrSerialization, pgErrDeadlock, pgErrCannotConnectNow, pgErrTooManyConns:
		return true
	}
	return strings.HasPrefix(pgErr.Code, pgClassConnection)
}
