// Package segment implements the per-segment text pipeline: grapheme
// normalization, allophone reduction, stable identifier encoding, and
// resolution against a canonical phoneme catalog.
package segment

import "golang.org/x/text/unicode/norm"

// Normalize applies the light, catalog-independent cleanup used before
// any grapheme comparison: Unicode canonical composition (NFC), then
// removal of at most one bounding pair of parentheses, then at most one
// bounding pair of square brackets. Each strip looks at the current
// string, so "([a])" reduces to "a" while "[[a]]" only loses the outer
// pair.
func Normalize(text string) string {
	s := norm.NFC.String(text)
	s = stripBounding(s, '(', ')')
	s = stripBounding(s, '[', ']')
	return s
}

func stripBounding(s string, opening, closing byte) string {
	if len(s) >= 2 && s[0] == opening && s[len(s)-1] == closing {
		return s[1 : len(s)-1]
	}
	return s
}
