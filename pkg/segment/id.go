package segment

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// EncodeID derives a stable identifier from a Unicode string: an ASCII
// slug of the text, "_", then one "u%04X" token per code point in
// string order. Slugs of different strings may collide ("ã" and "a"
// both slug to "a"); the codepoint tail keeps the full IDs apart.
//
//	EncodeID("p") = "p_u0070"
//	EncodeID("ã") = "a_u00E3"
func EncodeID(text string) string {
	var b strings.Builder
	b.WriteString(slug.Make(text))
	b.WriteByte('_')
	for _, r := range text {
		fmt.Fprintf(&b, "u%04X", r)
	}
	return b.String()
}
