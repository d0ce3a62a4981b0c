package dateparse

import (
	"strconv"
	"strings"
	"time"
)

// pivotYear maps a two digit year onto a century: 00-49 -> 2000s, 50-99 -> 1900s
func pivotYear(y int) int {
	switch {
	case y >= 100:
		return y
	case y < 50:
		return 2000 + y
	default:
		return 1900 + y
	}
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func daysIn(y, m int) int {
	switch m {
	case 2:
		if isLeap(y) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}

// validDate reports whether y-m-d is a real calendar day
func validDate(y, m, d int) bool {
	if y < 1 || y > 9999 || m < 1 || m > 12 || d < 1 {
		return false
	}
	return d <= daysIn(y, m)
}

// clock is a parsed wall time
type clock struct {
	h, m, s int
}

// parseClock validates hour/minute/second strings plus an optional am/pm marker
// and returns the 24h wall time. sec may be empty
func parseClock(hour, min, sec, meridiem string) (clock, bool) {
	h, err := strconv.Atoi(hour)
	if err != nil {
		return clock{}, false
	}
	mi, err := strconv.Atoi(min)
	if err != nil || mi < 0 || mi > 59 {
		return clock{}, false
	}
	s := 0
	if sec != "" {
		if s, err = strconv.Atoi(sec); err != nil || s < 0 || s > 59 {
			return clock{}, false
		}
	}

	switch strings.ToLower(meridiem) {
	case "":
		if h < 0 || h > 23 {
			return clock{}, false
		}
	case "am":
		if h < 1 || h > 12 {
			return clock{}, false
		}
		if h == 12 {
			h = 0
		}
	case "pm":
		if h < 1 || h > 12 {
			return clock{}, false
		}
		if h != 12 {
			h += 12
		}
	default:
		return clock{}, false
	}
	return clock{h: h, m: mi, s: s}, true
}

// at builds the instant after the caller has validated every field
func at(y, m, d int, c clock, loc *time.Location) time.Time {
	return time.Date(y, time.Month(m), d, c.h, c.m, c.s, 0, loc)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
