package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldName lowercases a name and strips its diacritics so user input typed
// on any keyboard can match it (card names are full of them).
func FoldName(v string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, v)
	if err != nil {
		// Not a transform that can fail on valid UTF-8, but degrading to the
		// accented name beats refusing to store it.
		return strings.ToLower(v)
	}

	return strings.ToLower(folded)
}
