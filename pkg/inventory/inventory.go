// Package inventory parses the raw per-language source files: a
// line-oriented, section-header-delimited plain-text format carrying a
// language's phoneme inventory. Pure functions, no I/O beyond the
// reader handed in.
package inventory

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Record is the parsed content of one raw source file. Inventory order
// follows the source file.
type Record struct {
	Source       string
	LanguageName string
	ISOCode      string
	Consonants   []string
	Vowels       []string
}

// Parse reads one raw source from r. Lines are trimmed (including a
// stray byte-order mark anywhere on the line) and blank lines skipped.
// A line starting with "#" switches the current section: the label is
// the text between the first and the last character of the line, so
// headers are expected in the "#Label#" form. Lines under a section
// that is not recognized are dropped.
func Parse(r io.Reader) (Record, error) {
	var rec Record
	section := ""

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(strings.ReplaceAll(sc.Text(), "\ufeff", ""))
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			section = strings.TrimSpace(trimLastRune(line[1:]))
			continue
		}

		switch section {
		case "Reference":
			rec.Source = line
		case "Language":
			rec.LanguageName = line
		case "ISO Code":
			rec.ISOCode = line
		case "Consonant Inventory":
			rec.Consonants = append(rec.Consonants, SplitSegments(line)...)
		case "Vowel Inventory":
			rec.Vowels = append(rec.Vowels, SplitSegments(line)...)
		}
	}
	if err := sc.Err(); err != nil {
		return Record{}, fmt.Errorf("scan raw source: %w", err)
	}

	return rec, nil
}

// ParseFile opens and parses one raw source file.
func ParseFile(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, fmt.Errorf("open raw source: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// SplitSegments splits an inventory line into segment tokens on commas.
// Commas inside a parenthesized span do not split; those list
// allophones, as in "k (ʔ), m". Tokens are whitespace-trimmed and
// empties dropped.
// Only a single level of parentheses is masked; the notation never
// nests, so nested spans are a known limitation, not handled.
func SplitSegments(text string) []string {
	var tokens []string
	var b strings.Builder
	inParen := false

	for _, r := range text {
		switch {
		case r == '(':
			inParen = true
			b.WriteRune(r)
		case r == ')':
			inParen = false
			b.WriteRune(r)
		case r == ',' && !inParen:
			tokens = append(tokens, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	tokens = append(tokens, b.String())

	var out []string
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func trimLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
