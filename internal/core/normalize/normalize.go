// Package normalize cleans text selections copied out of web pages, chat tools
// and terminals before they reach the date extractor or the store.
//
// Pipeline order
// 1 drop control bytes and invalid UTF-8
// 2 Unicode NFKC normalization
// 3 remove format chars (zero-width space, ZWJ, BOM, bidi marks)
// 4 width fold fullwidth digits and punctuation to ASCII
// 5 collapse whitespace runs (including NBSP and newlines) to one space and trim
//
// Case is preserved; "PM" and "Oct" stay readable in logs and stored numbers.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is safe for concurrent use
type Normalizer struct{}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

var std = New()

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Selection normalizes s with the shared Normalizer
func Selection(s string) string { return std.Normalize(s) }

// Normalize returns the cleaned form of s following the pipeline above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// the chain only fails on malformed input, which Sanitize already removed
		ns = s
	}

	return collapseSpaces(ns)
}

// collapseSpaces turns every whitespace run into a single ASCII space and trims the ends
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
