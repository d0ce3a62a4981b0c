// Package time holds the ISO-8601 helpers used for persisted timestamps
package time

import "time"

// ISOLayout is the persisted form: UTC, millisecond precision, trailing Z
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// ISO renders t in UTC with millisecond precision, e.g. 2024-03-12T14:05:00.000Z
func ISO(t time.Time) string { return t.UTC().Format(ISOLayout) }

// ParseISO reads a persisted timestamp. Any RFC 3339 string is accepted so
// values written by other tools with a numeric offset still load
func ParseISO(s string) (time.Time, error) { return time.Parse(time.RFC3339Nano, s) }

// DiffMs returns b-a in whole milliseconds. ok is false if either side is absent or unparsable
func DiffMs(a, b *string) (ms int64, ok bool) {
	if a == nil || b == nil {
		return 0, false
	}
	ta, err := ParseISO(*a)
	if err != nil {
		return 0, false
	}
	tb, err := ParseISO(*b)
	if err != nil {
		return 0, false
	}
	return tb.Sub(ta).Milliseconds(), true
}
