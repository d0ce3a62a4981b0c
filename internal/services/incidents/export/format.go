// Package export renders incident records for people: table strings and CSV
package export

import (
	"strconv"
	"time"

	"incidentsaver/internal/core/incident"
	ptime "incidentsaver/internal/platform/time"
	"incidentsaver/internal/services/incidents/domain"
)

// Absent is shown for missing or unreadable values
const Absent = "-"

// FormatMDY renders an ISO timestamp as "M/D/YY H:MM" in loc, eg "10/30/25 12:11"
func FormatMDY(iso *string, loc *time.Location) string {
	if iso == nil || *iso == "" {
		return Absent
	}
	t, err := ptime.ParseISO(*iso)
	if err != nil {
		return Absent
	}
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return strconv.Itoa(int(t.Month())) + "/" +
		strconv.Itoa(t.Day()) + "/" +
		t.Format("06") + " " +
		strconv.Itoa(t.Hour()) + ":" + t.Format("04")
}

// FormatDuration renders milliseconds as "Xh Ym", "Xm Ys" or "Xs".
// Absent and zero durations render as Absent; negative ones keep their sign
func FormatDuration(ms *int64) string {
	if ms == nil || *ms == 0 {
		return Absent
	}
	v := *ms
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	sec := v / 1000
	min := sec / 60
	hr := min / 60
	switch {
	case hr > 0:
		return sign + strconv.FormatInt(hr, 10) + "h " + strconv.FormatInt(min%60, 10) + "m"
	case min > 0:
		return sign + strconv.FormatInt(min, 10) + "m " + strconv.FormatInt(sec%60, 10) + "s"
	}
	return sign + strconv.FormatInt(sec, 10) + "s"
}

// Describe builds the display block for one record
func Describe(r incident.Record, loc *time.Location) domain.Display {
	return domain.Display{
		Occurrence: FormatMDY(r.Occurrence, loc),
		Detection:  FormatMDY(r.Detection, loc),
		Resolve:    FormatMDY(r.Resolve, loc),
		Mttd:       FormatDuration(r.Mttd),
		Mttr:       FormatDuration(r.Mttr),
	}
}

// Items pairs every record with its display block
func Items(rs []incident.Record, loc *time.Location) []domain.ListItem {
	out := make([]domain.ListItem, 0, len(rs))
	for _, r := range rs {
		out = append(out, domain.ListItem{Record: r, Display: Describe(r, loc)})
	}
	return out
}
