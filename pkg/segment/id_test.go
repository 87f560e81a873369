package segment

import "testing"

func TestEncodeID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "ascii letter",
			input:    "p",
			expected: "p_u0070",
		},
		{
			// gosimple/unidecode maps U+02B0 to "k"; the codepoint
			// tail still records the real letter.
			name:     "modifier letter transliterated in slug",
			input:    "pʰ",
			expected: "pk_u0070u02B0",
		},
		{
			name:     "precomposed codepoint",
			input:    "ã",
			expected: "a_u00E3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeID(tt.input)
			if got != tt.expected {
				t.Errorf("EncodeID(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEncodeIDDeterministic(t *testing.T) {
	inputs := []string{"p", "pʰ", "ʔ", "t̪", "ã"}
	for _, in := range inputs {
		first := EncodeID(in)
		second := EncodeID(in)
		if first != second {
			t.Errorf("EncodeID(%q) not stable: %q then %q", in, first, second)
		}
	}
}

func TestEncodeIDDistinguishesCodepoints(t *testing.T) {
	// Visually identical but codepoint-distinct: precomposed U+00E3
	// versus "a" plus combining tilde. Slugs collide, IDs must not.
	composed := "ã"
	decomposed := "ã"

	a := EncodeID(composed)
	b := EncodeID(decomposed)
	if a == b {
		t.Fatalf("EncodeID collision: %q and %q both encode to %q", composed, decomposed, a)
	}
}
