// Package search provides the folded-text matching used for user lookups.
// Names in the portal mix Turkish and Latin spellings, so matching happens
// over a diacritic-free lowercase form rather than the raw text.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s decomposed, stripped of combining marks and lowercased.
// "Müşteri Raporları" folds to "musteri raporlari".
//
// Dotless ı has no Unicode decomposition, so stripping combining marks alone
// would leave it untouched; it is mapped by hand. Dotted İ needs no special
// case because its combining dot falls away in the NFD pass.
func Fold(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Map(func(r rune) rune {
			if r == 'ı' {
				return 'i'
			}
			return r
		}),
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Match reports whether needle occurs in haystack once both are folded.
// An empty needle matches everything.
func Match(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
