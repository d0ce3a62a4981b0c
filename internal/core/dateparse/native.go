package dateparse

import (
	"regexp"
	"time"
)

// nativeLayouts are tried in order against the whole text.
// Layouts without an offset resolve in the extractor's location
var nativeLayouts = []string{
	// ISO 8601; fractional seconds are accepted after any seconds field
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04Z07",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",

	// year first with slashes, as log viewers print it
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006/1/2",

	// RFC 2822 and friends, weekday optional, one or two digit day
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04 -0700",
	"Mon, 2 Jan 2006 15:04 MST",
	"Mon, 2 Jan 2006 15:04:05",
	"Mon, 2 Jan 2006 15:04",
	"Mon, 2 Jan 2006",
	"2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04 -0700",
	"2 Jan 2006 15:04 MST",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
	"2 Jan 2006",
	time.RFC822,
	time.RFC822Z,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	time.RubyDate,
	jsDateString,
}

// jsDateString is what a browser prints for Date.prototype.toString, minus the
// trailing "(Zone Name)" comment
const jsDateString = "Mon Jan 02 2006 15:04:05 GMT-0700"

var zoneComment = regexp.MustCompile(`\s*\([^()]*\)$`)

// rfc2822Zones are the named zones RFC 2822 allows besides UT and GMT.
// time.Parse records an unknown abbreviation at offset zero
var rfc2822Zones = map[string]int{
	"EST": -5, "EDT": -4,
	"CST": -6, "CDT": -5,
	"MST": -7, "MDT": -6,
	"PST": -8, "PDT": -7,
}

// fixZone moves t onto the real offset of an RFC 2822 zone name parsed as zero
func fixZone(t time.Time) time.Time {
	name, off := t.Zone()
	h, ok := rfc2822Zones[name]
	if !ok || off != 0 {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		time.FixedZone(name, h*3600))
}

type nativeMatcher struct{}

// Native matches when the whole text is a known machine-readable literal
func Native() Matcher { return nativeMatcher{} }

func (nativeMatcher) Name() string { return MatcherNative }

func (nativeMatcher) Match(text string, loc *time.Location) (time.Time, bool) {
	candidates := []string{text}
	if stripped := zoneComment.ReplaceAllString(text, ""); stripped != text {
		candidates = append(candidates, stripped)
	}
	for _, c := range candidates {
		for _, layout := range nativeLayouts {
			if t, err := time.ParseInLocation(layout, c, loc); err == nil {
				return fixZone(t), true
			}
		}
	}
	return time.Time{}, false
}
