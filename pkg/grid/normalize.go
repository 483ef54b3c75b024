package grid

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize folds full-width forms (NFKC), drops every character that is not
// an ASCII letter, an ASCII digit or a CJK ideograph, and lowercases the rest.
func Normalize(s string) string {
	s = norm.NFKC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		case isIdeograph(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isIdeograph reports whether r is in the CJK Unified Ideographs block.
func isIdeograph(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FA5
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
