package dataset

import (
	"strings"
	"unicode"
)

// NormalizeName lowercases s and drops every rune that is not a cased letter.
// Diacritics are kept, so "Luka Dončić" and "Luka Doncic" stay distinct.
func NormalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if isLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isLetter accepts runes that have distinct upper and lower case forms
func isLetter(r rune) bool {
	return unicode.IsLetter(r) && unicode.ToUpper(r) != unicode.ToLower(r)
}
