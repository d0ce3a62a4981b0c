package dateparse

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

var monthName = regexp.MustCompile(
	`\b([A-Za-z]{3,9}) (\d{1,2}),? (\d{4})(?:\D*(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AaPp][Mm])?)?`,
)

// dayFirst is "30 Oct 2025", "5 October, 2025 12:11", "3rd Oct 2025"
var dayFirst = regexp.MustCompile(
	`\b(\d{1,2})(?:st|nd|rd|th)? ([A-Za-z]{3,9})\.?,? (\d{4})(?:\D*(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AaPp][Mm])?)?`,
)

// candidate is one regex hit normalised to month, day, year, clock groups
type candidate struct {
	start                    int
	month, day, year         string
	hour, minute, sec, merid string
}

// candidates returns month-first and day-first hits ordered by position
func candidates(text string) []candidate {
	var out []candidate
	for _, ix := range monthName.FindAllStringSubmatchIndex(text, -1) {
		g := groups(text, ix)
		out = append(out, candidate{ix[0], g[1], g[2], g[3], g[4], g[5], g[6], g[7]})
	}
	for _, ix := range dayFirst.FindAllStringSubmatchIndex(text, -1) {
		g := groups(text, ix)
		out = append(out, candidate{ix[0], g[2], g[1], g[3], g[4], g[5], g[6], g[7]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].start < out[j].start })
	return out
}

func groups(text string, ix []int) []string {
	g := make([]string, len(ix)/2)
	for i := range g {
		if ix[2*i] >= 0 {
			g[i] = text[ix[2*i]:ix[2*i+1]]
		}
	}
	return g
}

var months = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// lookupMonth resolves an English month name or abbreviation, any case
func lookupMonth(s string) (int, bool) {
	m, ok := months[strings.ToLower(s)]
	return m, ok
}

type monthNameMatcher struct{}

// MonthName matches "Oct 30, 2025 12:11 PM", "October 30 2025", "Thu Sept 4, 2025 at 9:05am"
// and day-first "30 Oct 2025 12:11". Every candidate is tried left to right until one validates
func MonthName() Matcher { return monthNameMatcher{} }

func (monthNameMatcher) Name() string { return MatcherMonthName }

func (monthNameMatcher) Match(text string, loc *time.Location) (time.Time, bool) {
	for _, m := range candidates(text) {
		mo, ok := lookupMonth(m.month)
		if !ok {
			continue
		}
		y, d := atoi(m.year), atoi(m.day)
		if !validDate(y, mo, d) {
			continue
		}
		var c clock
		if m.hour != "" {
			if c, ok = parseClock(m.hour, m.minute, m.sec, m.merid); !ok {
				continue
			}
		}
		return at(y, mo, d, c, loc), true
	}
	return time.Time{}, false
}
