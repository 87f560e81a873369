package segment

import "regexp"

var reParenSpan = regexp.MustCompile(`\([^)]*\)`)

// ReduceAllophones keeps the primary form of a segment carrying
// parenthesized annotations. The same notation means two things and
// only position tells them apart: a token wrapped in parentheses as a
// whole ("(ʔ)") marks a marginal sound and is returned unchanged, while
// embedded spans list allophones of the bare form and are cut out, so
// "k(ʰ)" becomes "k".
func ReduceAllophones(segment string) string {
	if len(segment) >= 2 && segment[0] == '(' && segment[len(segment)-1] == ')' {
		return segment
	}
	return reParenSpan.ReplaceAllString(segment, "")
}
