// Package textmatch normalizes free text for case- and accent-insensitive
// keyword matching.
package textmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s and strips combining marks, so "Mármol" and "MARMOL"
// both become "marmol".
func Fold(s string) string {
	// Transformers carry state; build a fresh chain per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// FirstMatch reports the first keyword, in the order given, that occurs as a
// substring of text. Both sides are folded before comparison.
func FirstMatch(text string, keywords ...string) (string, bool) {
	folded := Fold(text)
	if folded == "" {
		return "", false
	}
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(folded, Fold(kw)) {
			return kw, true
		}
	}
	return "", false
}

// ContainsAny reports whether text contains any of the keywords.
func ContainsAny(text string, keywords ...string) bool {
	_, ok := FirstMatch(text, keywords...)
	return ok
}
