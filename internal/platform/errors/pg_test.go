package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatal("FromPostgres(nil) should be nil")
	}
	cases := []struct {
		code string
		want ErrorCode
	}{
		{"25006", ErrorCodeUnavailable},
		{"57P03", ErrorCodeUnavailable},
		{"40001", ErrorCodeStorage},
		{"42P01", ErrorCodeStorage},
	}
	for _, c := range cases {
		err := FromPostgres(fmt.Errorf("exec: %w", &pgconn.PgError{Code: c.code}), "kv get")
		if !IsCode(err, c.want) {
			t.Fatalf("FromPostgres(%s) = %v, want %v", c.code, CodeOf(err), c.want)
		}
	}
	if !IsCode(FromPostgres(stderrs.New("conn reset"), "kv"), ErrorCodeStorage) {
		t.Fatal("non-pg error should map to storage")
	}
}

func TestIsSQLState(t *testing.T) {
	err := Wrap(&pgconn.PgError{Code: "23505"}, ErrorCodeStorage, "set")
	if !IsSQLState(err, "23505") {
		t.Fatal("expected SQLSTATE through wrapper")
	}
	if IsSQLState(stderrs.New("nope"), "23505") {
		t.Fatal("plain error has no SQLSTATE")
	}
	if pe, ok := ExtractPgError(err); !ok || pe.Code != "23505" {
		t.Fatalf("ExtractPgError = %v %v", pe, ok)
	}
}

func TestSQLiteHelpers(t *testing.T) {
	if IsSQLiteBusy(stderrs.New("database is locked")) {
		t.Fatal("plain error is not a sqlite error")
	}
	if FromSQLite(nil, "x") != nil {
		t.Fatal("FromSQLite(nil) should be nil")
	}
	if !IsCode(FromSQLite(stderrs.New("no such table"), "get"), ErrorCodeStorage) {
		t.Fatal("FromSQLite should default to storage")
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", stderrs.New("conn reset"), false},
		{"serialization", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"cannot connect now", &pgconn.PgError{Code: "57P03"}, true},
		{"too many connections", &pgconn.PgError{Code: "53300"}, true},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"connection exception", &pgconn.PgError{Code: "08000"}, true},
		{"wrapped", Wrap(fmt.Errorf("tx: %w", &pgconn.PgError{Code: "40001"}), ErrorCodeStorage, "kv"), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"bad password", &pgconn.PgError{Code: "28P01"}, false},
		{"unknown database", &pgconn.PgError{Code: "3D000"}, false},
		{"read only", &pgconn.PgError{Code: "25006"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsRetryable(c.err); got != c.want {
				t.Fatalf("IsRetryable = %v, want %v", got, c.want)
			}
		})
	}
}
