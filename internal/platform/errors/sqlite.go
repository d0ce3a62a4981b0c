package errors

import (
	stderrs "errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// IsSQLiteBusy reports SQLITE_BUSY or SQLITE_LOCKED, including extended codes
func IsSQLiteBusy(err error) bool {
	var se *sqlite.Error
	if !stderrs.As(err, &se) {
		return false
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

// FromSQLite wraps a sqlite error as storage, or unavailable while the file is locked
func FromSQLite(err error, msg string) error {
	if err == nil {
		return nil
	}
	if IsSQLiteBusy(err) {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	return Wrap(err, ErrorCodeStorage, msg)
}
