// Package textnorm normalizes Portuguese free-text labels for keyword
// matching. Normalization is used only for substring containment checks,
// never for numeric parsing.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripper decomposes accented runes and removes the combining marks,
// so "Depreciação" becomes "Depreciacao".
var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases s and strips diacritics. Input that cannot be
// transformed is returned lowercased unchanged.
func Normalize(s string) string {
	stripped, _, err := transform.String(stripper, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(stripped)
}

// ContainsAny reports whether the normalized text contains at least one
// of the given normalized keywords. Empty keyword lists match nothing.
func ContainsAny(normalized string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}
