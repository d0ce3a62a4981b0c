// Package incident holds the incident record and the merge that derives MTTD and MTTR.
//
// Merge is pure: it never touches storage, never fails and returns a fresh Record.
package incident

import (
	"time"

	pstrings "incidentsaver/internal/platform/strings"
	ptime "incidentsaver/internal/platform/time"
)

// Field names as persisted, also used as change kinds
const (
	FieldNumber     = "incidentNumber"
	FieldOccurrence = "eventOccurrence"
	FieldDetection  = "eventDetection"
	FieldResolve    = "eventResolve"
)

// Record is one incident as stored under "incident:<number>".
// Timestamps are ISO-8601 UTC strings with millisecond precision; Mttd and Mttr
// are milliseconds and only ever set by Merge
type Record struct {
	Number     string  `json:"incidentNumber"`
	Occurrence *string `json:"eventOccurrence,omitempty"`
	Detection  *string `json:"eventDetection,omitempty"`
	Resolve    *string `json:"eventResolve,omitempty"`
	Mttd       *int64  `json:"mttd,omitempty"`
	Mttr       *int64  `json:"mttr,omitempty"`
}

// Valid reports whether the record has an identity. Records without one are
// skipped by every listing and export
func (r Record) Valid() bool { return r.Number != "" }

// Clone returns a deep copy
func (r Record) Clone() Record {
	return Record{
		Number:     r.Number,
		Occurrence: cloneStr(r.Occurrence),
		Detection:  cloneStr(r.Detection),
		Resolve:    cloneStr(r.Resolve),
		Mttd:       cloneInt(r.Mttd),
		Mttr:       cloneInt(r.Mttr),
	}
}

// Changes is a partial update. Nil fields leave the record alone
type Changes struct {
	Number     *string
	Occurrence *string
	Detection  *string
	Resolve    *string
}

// WithNumber is the change set for set_incident; a blank n changes nothing
func WithNumber(n string) Changes { return Changes{Number: pstrings.Ptr(n)} }

// Stamp returns a change that sets one timestamp field to t, rendered in the
// persisted ISO form. Unknown fields yield an empty change
func Stamp(field string, t time.Time) Changes {
	iso := pstrings.Ptr(ptime.ISO(t))
	switch field {
	case FieldOccurrence:
		return Changes{Occurrence: iso}
	case FieldDetection:
		return Changes{Detection: iso}
	case FieldResolve:
		return Changes{Resolve: iso}
	}
	return Changes{}
}

// Empty reports whether c would change nothing
func (c Changes) Empty() bool {
	return c.Number == nil && c.Occurrence == nil && c.Detection == nil && c.Resolve == nil
}

// Merge applies c on top of existing (nil means an empty record).
// New values win per field except the number, which is only filled when the
// record has none. Mttd and Mttr are then recomputed from scratch: each is set
// iff both of its inputs are present and parse, else cleared. Negative
// durations are kept as they are
func Merge(existing *Record, c Changes) Record {
	var out Record
	if existing != nil {
		out = existing.Clone()
	}

	if out.Number == "" && c.Number != nil {
		out.Number = *c.Number
	}
	if c.Occurrence != nil {
		out.Occurrence = cloneStr(c.Occurrence)
	}
	if c.Detection != nil {
		out.Detection = cloneStr(c.Detection)
	}
	if c.Resolve != nil {
		out.Resolve = cloneStr(c.Resolve)
	}

	out.Mttd = derive(out.Occurrence, out.Detection)
	out.Mttr = derive(out.Detection, out.Resolve)
	return out
}

func derive(from, to *string) *int64 {
	ms, ok := ptime.DiffMs(from, to)
	if !ok {
		return nil
	}
	return &ms
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
