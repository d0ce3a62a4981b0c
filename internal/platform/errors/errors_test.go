package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeNoCurrentIncident, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeEmptySelection, http.StatusUnprocessableEntity},
		{ErrorCodeUnparsableDate, http.StatusUnprocessableEntity},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeStorage, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	if got := ErrorCodeUnparsableDate.String(); got != "unparsable_date" {
		t.Fatalf("String() = %q", got)
	}
	if got := ErrorCode(500).String(); got != "code(500)" {
		t.Fatalf("String() unknown = %q", got)
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q", nilErr.Error())
	}

	src := stderrs.New("disk full")
	e := Storagef(src, "save %s", "incident:INC-1")
	if want := "save incident:INC-1: disk full"; e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}
	if !stderrs.Is(e, src) {
		t.Fatal("wrapped cause lost")
	}
	if !IsCode(e, ErrorCodeStorage) {
		t.Fatalf("CodeOf = %v", CodeOf(e))
	}
	if IsCode(nil, ErrorCodeUnknown) {
		t.Fatal("IsCode(nil) must be false")
	}

	if _, ok := As(src); ok {
		t.Fatal("As() true for foreign error")
	}

	base := InvalidArgf("unknown action %q", "explode")
	withField := WithField(base, "action")
	withOp := WithOp(withField, "handle")
	if fe, _ := As(withField); fe.Field() != "action" {
		t.Fatal("WithField failed")
	}
	if oe, _ := As(withOp); oe.Op() != "handle" {
		t.Fatal("WithOp failed")
	}
	if b, _ := As(base); b.Field() != "" || b.Op() != "" {
		t.Fatal("copy-on-write mutated original")
	}
	if WithField(src, "x") != src || WithOp(src, "x") != src {
		t.Fatal("foreign errors should pass through unchanged")
	}

	w := WireFrom(withField)
	if w.Code != ErrorCodeInvalidArgument || w.Reason != "invalid_argument" || w.Field != "action" {
		t.Fatalf("WireFrom(ours) = %+v", w)
	}
	if w := WireFrom(e); w.Message != "save incident:INC-1" {
		t.Fatalf("wire message should exclude cause, got %q", w.Message)
	}
	if w := WireFrom(src); w.Code != ErrorCodeUnknown || w.Message != "disk full" {
		t.Fatalf("WireFrom(foreign) = %+v", w)
	}
	if WireFrom(nil) != (Wire{}) {
		t.Fatal("WireFrom(nil) should be zero")
	}

	if st, _ := HTTP(nil); st != http.StatusOK {
		t.Fatalf("HTTP(nil) = %d", st)
	}
	if st, wire := HTTP(base); st != http.StatusUnprocessableEntity || wire.Reason != "invalid_argument" {
		t.Fatalf("HTTP(base) = %d %+v", st, wire)
	}
}

func TestSugarAndWrapIf(t *testing.T) {
	checks := []struct {
		code ErrorCode
		err  error
	}{
		{ErrorCodeNotFound, NotFoundf("x")},
		{ErrorCodeJSON, JSONErrf("x")},
		{ErrorCodePanic, PanicErrf("x")},
		{ErrorCodeUnavailable, Unavailablef("x")},
		{ErrorCodeStorage, Storagef(nil, "x")},
		{ErrorCodeNotFound, ErrNotFound},
	}
	for _, c := range checks {
		if !IsCode(c.err, c.code) {
			t.Fatalf("want %v, got %v", c.code, CodeOf(c.err))
		}
	}
	if WrapIf(nil, ErrorCodeStorage, "ignored") != nil {
		t.Fatal("WrapIf(nil) should be nil")
	}
	if WrapIf(stderrs.New("x"), ErrorCodeStorage, "kv") == nil {
		t.Fatal("WrapIf(non-nil) should wrap")
	}
}

func TestRoot(t *testing.T) {
	src := stderrs.New("root")
	deep := fmt.Errorf("level2: %w", fmt.Errorf("level1: %w", src))
	if Root(deep) != src {
		t.Fatalf("Root() = %v", Root(deep))
	}
	if Root(nil) != nil {
		t.Fatal("Root(nil) should be nil")
	}
}
