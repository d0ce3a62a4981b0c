// Package dateparse pulls a single point in time out of a free-text selection.
//
// Selections come from log viewers, ticketing tools and chat timestamps, so no
// single layout fits. An Extractor runs an ordered chain of named matchers and
// returns the first success:
//
//	native            whole text is a machine-readable literal (RFC 3339, RFC 1123, ANSIC, JS Date.toString ...)
//	numeric-date      M/D/YYYY or M-D-YY, with an optional H:MM[:SS] [AM|PM]
//	month-name        "Oct 30, 2025", with an optional time after any non-digit run
//	numeric-heuristic any three digit runs, year first value > 31, then month, then day
//
// Everything without an explicit offset is read in the Extractor's location.
// Numeric dates are always month before day; "03/04/2025" is March 4th. Day-first
// locales parse wrongly and that is accepted behaviour, not a bug to patch here.
package dateparse

import (
	"time"

	"incidentsaver/internal/core/normalize"
)

// Matcher names, reported in Result.Matcher
const (
	MatcherNative    = "native"
	MatcherNumeric   = "numeric-date"
	MatcherMonthName = "month-name"
	MatcherHeuristic = "numeric-heuristic"
)

// Matcher is one step of the extraction chain. Match receives normalized text
// and must not rely on time.Date normalising out-of-range fields
type Matcher interface {
	Name() string
	Match(text string, loc *time.Location) (time.Time, bool)
}

// Result describes a successful extraction
type Result struct {
	At      time.Time `json:"at"`
	Matcher string    `json:"matcher"`
	Input   string    `json:"input"`
}

// Extractor is immutable after New and safe for concurrent use
type Extractor struct {
	loc      *time.Location
	matchers []Matcher
}

// Option configures an Extractor
type Option func(*Extractor)

// WithMatchers replaces the default chain. Order is precedence
func WithMatchers(ms ...Matcher) Option {
	return func(e *Extractor) { e.matchers = append([]Matcher(nil), ms...) }
}

// DefaultMatchers returns the standard chain in precedence order
func DefaultMatchers() []Matcher {
	return []Matcher{Native(), NumericDate(), MonthName(), NumericHeuristic()}
}

// New builds an Extractor reading local times in loc (time.Local when nil)
func New(loc *time.Location, opts ...Option) *Extractor {
	if loc == nil {
		loc = time.Local
	}
	e := &Extractor{loc: loc, matchers: DefaultMatchers()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Location returns the zone used for offset-less input
func (e *Extractor) Location() *time.Location { return e.loc }

// Extract returns the timestamp found in text, or ok=false
func (e *Extractor) Extract(text string) (time.Time, bool) {
	r, ok := e.ExtractResult(text)
	return r.At, ok
}

// ExtractResult is Extract plus the name of the matcher that succeeded
func (e *Extractor) ExtractResult(text string) (Result, bool) {
	clean := normalize.Selection(text)
	if clean == "" {
		return Result{}, false
	}
	for _, m := range e.matchers {
		if at, ok := m.Match(clean, e.loc); ok {
			return Result{At: at, Matcher: m.Name(), Input: clean}, true
		}
	}
	return Result{}, false
}

// Extract runs the default chain in time.Local
func Extract(text string) (time.Time, bool) {
	return New(time.Local).Extract(text)
}
