package dateparse

import (
	"testing"
	"time"
)

var est = time.FixedZone("EST", -5*60*60)

func TestExtract_Table(t *testing.T) {
	x := New(est)
	local := func(y int, mo time.Month, d, h, mi, s int) time.Time {
		return time.Date(y, mo, d, h, mi, s, 0, est)
	}

	tests := []struct {
		name    string
		in      string
		want    time.Time
		matcher string
	}{
		{"slash date with pm", "10/30/2025 12:11 PM", local(2025, 10, 30, 12, 11, 0), MatcherNumeric},
		{"month name with pm", "Oct 30, 2025 12:11 PM", local(2025, 10, 30, 12, 11, 0), MatcherMonthName},
		{"weekday prefix", "Thu 10/30/2025 12:11 PM", local(2025, 10, 30, 12, 11, 0), MatcherNumeric},
		{"dash date two digit year", "10-30-25", local(2025, 10, 30, 0, 0, 0), MatcherNumeric},
		{"two digit year pivots to 1900s", "10/30/75 08:00", local(1975, 10, 30, 8, 0, 0), MatcherNumeric},
		{"twelve am is midnight", "10/30/2025 12:05 AM", local(2025, 10, 30, 0, 5, 0), MatcherNumeric},
		{"seconds", "1/2/2025, 23:59:58", local(2025, 1, 2, 23, 59, 58), MatcherNumeric},
		{"embedded in log line", "[prod] alert fired 10/30/2025T09:15:00 host=db1", local(2025, 10, 30, 9, 15, 0), MatcherNumeric},
		{"full month name", "October 30 2025", local(2025, 10, 30, 0, 0, 0), MatcherMonthName},
		{"sept with words before time", "Thu Sept 4, 2025 at 9:05am", local(2025, 9, 4, 9, 5, 0), MatcherMonthName},
		{"lowercase month", "dec 1, 2024 5:00 pm", local(2024, 12, 1, 17, 0, 0), MatcherMonthName},
		{"second month name candidate", "Status 2, 2025 then Nov 3, 2025", local(2025, 11, 3, 0, 0, 0), MatcherMonthName},
		{"iso date only is local", "2025-10-30", local(2025, 10, 30, 0, 0, 0), MatcherNative},
		{"iso local datetime", "2025-10-30 12:11", local(2025, 10, 30, 12, 11, 0), MatcherNative},
		{"rfc3339 with offset", "2025-10-30T12:11:00-05:00", local(2025, 10, 30, 12, 11, 0), MatcherNative},
		{"js date string", "Thu Oct 30 2025 12:11:00 GMT-0500 (Eastern Standard Time)", local(2025, 10, 30, 12, 11, 0), MatcherNative},
		{"rfc1123z", "Thu, 30 Oct 2025 12:11:00 -0500", local(2025, 10, 30, 12, 11, 0), MatcherNative},
		{"fullwidth digits", "１０/３０/２０２５ １２:１１ ＰＭ", local(2025, 10, 30, 12, 11, 0), MatcherNumeric},
		{"heuristic year first", "2025 10 30", local(2025, 10, 30, 0, 0, 0), MatcherHeuristic},
		{"heuristic dotted", "03.04.2025", local(2025, 3, 4, 0, 0, 0), MatcherHeuristic},
		{"invalid clock falls through to heuristic", "10/30/2025 13:00 PM", local(2025, 10, 30, 0, 0, 0), MatcherHeuristic},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, ok := x.ExtractResult(tc.in)
			if !ok {
				t.Fatalf("ExtractResult(%q) failed", tc.in)
			}
			if !r.At.Equal(tc.want) {
				t.Fatalf("ExtractResult(%q) = %s, want %s", tc.in, r.At, tc.want)
			}
			if r.Matcher != tc.matcher {
				t.Fatalf("matcher = %q, want %q", r.Matcher, tc.matcher)
			}
		})
	}
}

func TestExtract_Failures(t *testing.T) {
	x := New(est)
	for _, in := range []string{
		"",
		"   \t ",
		"random words no numbers",
		"12 34",
		"INC-42",
		"13/30/2025",
		"2/29/2025",
		"Octopus 30, 2025",
		"99 98 97",
	} {
		if got, ok := x.Extract(in); ok {
			t.Fatalf("Extract(%q) = %s, want failure", in, got)
		}
	}
}

func TestExtract_ISORoundTrip(t *testing.T) {
	x := New(est)
	orig := time.Date(2025, 10, 30, 17, 11, 0, 123_000_000, time.UTC)
	s := orig.Format("2006-01-02T15:04:05.000Z07:00")
	if s != "2025-10-30T17:11:00.123Z" {
		t.Fatalf("format = %q", s)
	}
	got, ok := x.Extract(s)
	if !ok || !got.Equal(orig) {
		t.Fatalf("round trip: got %s ok=%v", got, ok)
	}
}

func TestExtract_ISOVariants(t *testing.T) {
	x := New(est)
	utc := func(h, mi, s, ms int) time.Time { return time.Date(2025, 10, 30, h, mi, s, ms*1_000_000, time.UTC) }

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-10-30T12:11Z", utc(12, 11, 0, 0)},
		{"2025-10-30T12:11+05:30", utc(6, 41, 0, 0)},
		{"2025-10-30T12:11+0530", utc(6, 41, 0, 0)},
		{"2025-10-30T12:11-05", utc(17, 11, 0, 0)},
		{"2025-10-30T12:11:45Z", utc(12, 11, 45, 0)},
		{"2025-10-30T12:11:45-05:00", utc(17, 11, 45, 0)},
		{"2025-10-30T12:11:45-0500", utc(17, 11, 45, 0)},
		{"2025-10-30T12:11:45.250Z", utc(12, 11, 45, 250)},
		{"2025-10-30T12:11:45.250+01:00", utc(11, 11, 45, 250)},
		{"2025-10-30T12:11:45.250-0500", utc(17, 11, 45, 250)},
		{"2025-10-30 12:11Z", utc(12, 11, 0, 0)},
		{"2025-10-30 12:11:45+00:00", utc(12, 11, 45, 0)},
		{"2025-10-30T12:11", utc(17, 11, 0, 0)},
		{"2025-10-30T12:11:45", utc(17, 11, 45, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			r, ok := x.ExtractResult(tc.in)
			if !ok || !r.At.Equal(tc.want) {
				t.Fatalf("ExtractResult(%q) = %s ok=%v, want %s", tc.in, r.At, ok, tc.want)
			}
			if r.Matcher != MatcherNative {
				t.Fatalf("matcher = %q", r.Matcher)
			}
		})
	}
}

func TestExtract_RFC2822AndDayFirst(t *testing.T) {
	x := New(est)
	utc := func(mo time.Month, d, h, mi, s int) time.Time { return time.Date(2025, mo, d, h, mi, s, 0, time.UTC) }
	local := func(mo time.Month, d, h, mi int) time.Time { return time.Date(2025, mo, d, h, mi, 0, 0, est) }

	tests := []struct {
		in      string
		want    time.Time
		matcher string
	}{
		{"Thu, 3 Oct 2025 12:11:00 +0000", utc(10, 3, 12, 11, 0), MatcherNative},
		{"Thu, 30 Oct 2025 12:11:00 +0000", utc(10, 30, 12, 11, 0), MatcherNative},
		{"Thu, 30 Oct 2025 12:11:00 GMT", utc(10, 30, 12, 11, 0), MatcherNative},
		{"Thu, 30 Oct 2025 12:11:00 PDT", utc(10, 30, 19, 11, 0), MatcherNative},
		{"Thu, 30 Oct 2025 12:11 -0500", utc(10, 30, 17, 11, 0), MatcherNative},
		{"30 Oct 2025 12:11:00 +0000", utc(10, 30, 12, 11, 0), MatcherNative},
		{"3 Oct 2025 08:00:00 EST", utc(10, 3, 13, 0, 0), MatcherNative},
		{"Thu, 30 Oct 2025 12:11:00", local(10, 30, 12, 11), MatcherNative},
		{"5 Oct 2025 12:11", local(10, 5, 12, 11), MatcherNative},
		{"30 Oct 2025 12:11", local(10, 30, 12, 11), MatcherNative},
		{"5 Oct 2025", local(10, 5, 0, 0), MatcherNative},
		{"2025/10/30 12:11", local(10, 30, 12, 11), MatcherNative},
		{"2025/10/30 12:11:09", time.Date(2025, 10, 30, 12, 11, 9, 0, est), MatcherNative},
		{"2025/1/5", local(1, 5, 0, 0), MatcherNative},
		{"alert at 5 October 2025 9:05 pm on db1", local(10, 5, 21, 5), MatcherMonthName},
		{"opened 3rd Oct 2025", local(10, 3, 0, 0), MatcherMonthName},
		{"seen 30 Sept, 2025 14:00 then again", local(9, 30, 14, 0), MatcherMonthName},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			r, ok := x.ExtractResult(tc.in)
			if !ok || !r.At.Equal(tc.want) {
				t.Fatalf("ExtractResult(%q) = %s ok=%v, want %s", tc.in, r.At, ok, tc.want)
			}
			if r.Matcher != tc.matcher {
				t.Fatalf("matcher = %q, want %q", r.Matcher, tc.matcher)
			}
		})
	}
}

func TestMonthName_FirstCandidateWins(t *testing.T) {
	got, ok := MonthName().Match("filed 2 Nov 2025, closed Dec 3, 2025", est)
	if !ok || got.Month() != time.November || got.Day() != 2 {
		t.Fatalf("got %s ok=%v", got, ok)
	}
	// an invalid day-first hit falls through to the next candidate
	got, ok = MonthName().Match("31 Nov 2025 or Dec 3, 2025", est)
	if !ok || got.Month() != time.December || got.Day() != 3 {
		t.Fatalf("got %s ok=%v", got, ok)
	}
}

func TestFixZone(t *testing.T) {
	in := time.Date(2025, 10, 30, 8, 0, 0, 0, time.FixedZone("CDT", 0))
	got := fixZone(in)
	if _, off := got.Zone(); off != -5*3600 || got.Hour() != 8 {
		t.Fatalf("got %s", got)
	}
	named := time.Date(2025, 10, 30, 8, 0, 0, 0, time.FixedZone("EST", -5*3600))
	if !fixZone(named).Equal(named) {
		t.Fatal("zone with a real offset was moved")
	}
	if u := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC); !fixZone(u).Equal(u) {
		t.Fatal("UTC moved")
	}
}

func TestExtract_SameInstantAcrossFormats(t *testing.T) {
	x := New(est)
	a, ok1 := x.Extract("10/30/2025 12:11 PM")
	b, ok2 := x.Extract("Oct 30, 2025 12:11 PM")
	if !ok1 || !ok2 || !a.Equal(b) {
		t.Fatalf("a=%s b=%s", a, b)
	}
}

// Day-first input is read month-first. This is a known ambiguity, kept on purpose.
func TestHeuristic_MonthBeforeDay(t *testing.T) {
	x := New(est)
	got, ok := x.Extract("04.03.2025")
	if !ok {
		t.Fatal("expected a parse")
	}
	if got.Month() != time.April || got.Day() != 3 {
		t.Fatalf("got %s, want April 3", got)
	}

	// 30 cannot be a month, so a day-first date with day > 12 is rejected
	if _, ok := x.Extract("30.10.2025"); ok {
		t.Fatal("30.10.2025 should not parse")
	}
}

func TestHeuristic_DropsEveryYearToken(t *testing.T) {
	got, ok := NumericHeuristic().Match("2025 5 2025 6", est)
	if !ok || got.Month() != time.May || got.Day() != 6 {
		t.Fatalf("got %s ok=%v", got, ok)
	}
	if _, ok := NumericHeuristic().Match("2025 2025 7", est); ok {
		t.Fatal("only one non-year token should fail")
	}
}

func TestNumericDate_RejectsThreeDigitYear(t *testing.T) {
	if _, ok := NumericDate().Match("10/30/202", est); ok {
		t.Fatal("three digit year should not match")
	}
}

func TestNumericDate_InvalidClock(t *testing.T) {
	for _, in := range []string{"10/30/2025 13:00 PM", "10/30/2025 24:00", "10/30/2025 10:60", "10/30/2025 0:10 AM"} {
		if _, ok := NumericDate().Match(in, est); ok {
			t.Fatalf("%q should not match", in)
		}
	}
}

func TestWithMatchers_Order(t *testing.T) {
	x := New(est, WithMatchers(NumericHeuristic()))
	r, ok := x.ExtractResult("Oct 30, 2025 12:11 PM")
	// only runs 30, 2025, 12, 11: year 2025, month 30 is invalid
	if ok {
		t.Fatalf("heuristic-only chain should fail, got %+v", r)
	}
	if New(nil).Location() != time.Local {
		t.Fatal("nil location should default to time.Local")
	}
}

func TestPackageExtract(t *testing.T) {
	got, ok := Extract("10/30/2025 12:11 PM")
	if !ok {
		t.Fatal("package Extract failed")
	}
	want := time.Date(2025, 10, 30, 12, 11, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestValidDate(t *testing.T) {
	cases := []struct {
		y, m, d int
		ok      bool
	}{
		{2024, 2, 29, true},
		{2025, 2, 29, false},
		{1900, 2, 29, false},
		{2000, 2, 29, true},
		{2025, 4, 31, false},
		{2025, 12, 31, true},
		{2025, 0, 1, false},
		{0, 1, 1, false},
	}
	for _, c := range cases {
		if got := validDate(c.y, c.m, c.d); got != c.ok {
			t.Fatalf("validDate(%d,%d,%d) = %v", c.y, c.m, c.d, got)
		}
	}
}
