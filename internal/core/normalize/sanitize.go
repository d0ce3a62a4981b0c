package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops runes a copied selection should never carry into parsing or storage:
// NUL and the other ASCII controls except '\n', '\r', '\t', DEL, the C1 block
// U+0080..U+009F, and invalid UTF-8 bytes.
// Clean input is returned unchanged without allocating
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	if strings.IndexFunc(s, unwanted) < 0 && utf8.ValidString(s) {
		return s
	}

	// ToValidUTF8 first so Map never sees RuneError from a bad byte
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		if unwanted(r) {
			return -1
		}
		return r
	}, s)
}

func unwanted(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}
