package dateparse

import (
	"regexp"
	"time"
)

// numericDate finds the first M/D/Y run, optionally followed by a wall time
// separated by spaces, commas or a 'T'
var numericDate = regexp.MustCompile(
	`(?:^|\D)(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})(?:[ ,T]*(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AaPp][Mm])?)?`,
)

type numericDateMatcher struct{}

// NumericDate matches "10/30/2025 12:11 PM", "10-30-25", "Thu 10/30/2025 23:05:10"
func NumericDate() Matcher { return numericDateMatcher{} }

func (numericDateMatcher) Name() string { return MatcherNumeric }

func (numericDateMatcher) Match(text string, loc *time.Location) (time.Time, bool) {
	m := numericDate.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	var y int
	switch len(m[3]) {
	case 2:
		y = pivotYear(atoi(m[3]))
	case 4:
		y = atoi(m[3])
	default:
		return time.Time{}, false
	}
	mo, d := atoi(m[1]), atoi(m[2])
	if !validDate(y, mo, d) {
		return time.Time{}, false
	}

	var c clock
	if m[4] != "" {
		var ok bool
		if c, ok = parseClock(m[4], m[5], m[6], m[7]); !ok {
			return time.Time{}, false
		}
	}
	return at(y, mo, d, c, loc), true
}

var digitRuns = regexp.MustCompile(`\d{1,4}`)

type heuristicMatcher struct{}

// NumericHeuristic is the last resort: it needs at least three digit runs and
// reads them positionally. The year is the first value above 31 (else the last
// run); every run equal to the year is dropped; of what remains the first is the
// month and the second the day. The result is midnight local
func NumericHeuristic() Matcher { return heuristicMatcher{} }

func (heuristicMatcher) Name() string { return MatcherHeuristic }

func (heuristicMatcher) Match(text string, loc *time.Location) (time.Time, bool) {
	runs := digitRuns.FindAllString(text, -1)
	if len(runs) < 3 {
		return time.Time{}, false
	}
	nums := make([]int, len(runs))
	for i, r := range runs {
		nums[i] = atoi(r)
	}

	year := nums[len(nums)-1]
	for _, n := range nums {
		if n > 31 {
			year = n
			break
		}
	}
	others := make([]int, 0, len(nums))
	for _, n := range nums {
		if n != year {
			others = append(others, n)
		}
	}
	if len(others) < 2 {
		return time.Time{}, false
	}

	y, mo, d := pivotYear(year), others[0], others[1]
	if !validDate(y, mo, d) {
		return time.Time{}, false
	}
	return at(y, mo, d, clock{}, loc), true
}
