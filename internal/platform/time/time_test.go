package time

import (
	"testing"
	"time"
)

func TestISO(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	in := time.Date(2024, 3, 12, 16, 5, 0, 123456789, loc)
	if got := ISO(in); got != "2024-03-12T14:05:00.123Z" {
		t.Fatalf("ISO = %q", got)
	}
}

func TestParseISO_RoundTrip(t *testing.T) {
	s := "2024-03-12T14:05:00.000Z"
	got, err := ParseISO(s)
	if err != nil {
		t.Fatalf("ParseISO: %v", err)
	}
	if ISO(got) != s {
		t.Fatalf("round trip = %q", ISO(got))
	}
	if _, err := ParseISO("12/03/2024"); err == nil {
		t.Fatal("expected error for non-ISO input")
	}
	if _, err := ParseISO("2024-03-12T16:05:00+02:00"); err != nil {
		t.Fatalf("offset form should parse: %v", err)
	}
}

func TestDiffMs(t *testing.T) {
	a := "2024-03-12T14:00:00.000Z"
	b := "2024-03-12T14:15:00.000Z"
	bad := "garbage"

	if ms, ok := DiffMs(&a, &b); !ok || ms != 900000 {
		t.Fatalf("DiffMs = %d %v", ms, ok)
	}
	if ms, ok := DiffMs(&b, &a); !ok || ms != -900000 {
		t.Fatalf("DiffMs reversed = %d %v", ms, ok)
	}
	if _, ok := DiffMs(nil, &b); ok {
		t.Fatal("nil start should not be ok")
	}
	if _, ok := DiffMs(&a, &bad); ok {
		t.Fatal("bad end should not be ok")
	}
}
