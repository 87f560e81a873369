package segment

import "testing"

type fakeCatalog struct {
	graphemes map[string]string
	sounds    map[string]Sound
}

func (c fakeCatalog) GraphemeKey(grapheme string) (string, bool) {
	key, ok := c.graphemes[grapheme]
	return key, ok
}

func (c fakeCatalog) Sound(key string) (Sound, bool) {
	if key == "" {
		return Sound{}, false
	}
	s, ok := c.sounds[key]
	return s, ok
}

func TestResolve(t *testing.T) {
	cat := fakeCatalog{
		graphemes: map[string]string{
			"p":   "p",
			"t":   "t",
			"(w)": "βʷ",
			"w":   "w",
		},
		sounds: map[string]Sound{
			"p":  {Grapheme: "p", Name: "voiceless bilabial stop consonant"},
			"t":  {Grapheme: "t", Name: "voiceless alveolar stop consonant"},
			"βʷ": {Grapheme: "βʷ", Name: "labialized voiced bilabial fricative consonant"},
			"w":  {Grapheme: "w", Name: "voiced labio-velar approximant consonant"},
			"ʔ":  {Grapheme: "ʔ", Name: "voiceless glottal stop consonant"},
		},
	}
	rs := NewResolver(cat)

	tests := []struct {
		name     string
		raw      string
		expected Resolved
	}{
		{
			name: "raw grapheme-map hit",
			raw:  "p",
			expected: Resolved{
				ParameterID: "BIPA_p_u0070",
				Normalized:  "p",
				Grapheme:    "p",
				Description: "voiceless bilabial stop consonant",
			},
		},
		{
			name: "normalized grapheme-map fallback",
			raw:  "[t]",
			expected: Resolved{
				ParameterID: "BIPA_t_u0074",
				Normalized:  "t",
				Grapheme:    "t",
				Description: "voiceless alveolar stop consonant",
			},
		},
		{
			name: "raw consulted before normalized",
			raw:  "(w)",
			expected: Resolved{
				ParameterID: "BIPA_w_u0077",
				Normalized:  "w",
				Grapheme:    "βʷ",
				Description: "labialized voiced bilabial fricative consonant",
			},
		},
		{
			name: "main-table retry with normalized form",
			raw:  "(ʔ)",
			expected: Resolved{
				ParameterID: "BIPA_" + EncodeID("ʔ"),
				Normalized:  "ʔ",
				Grapheme:    "ʔ",
				Description: "voiceless glottal stop consonant",
			},
		},
		{
			name: "unknown segment tagged, not an error",
			raw:  "ǂǂ",
			expected: Resolved{
				ParameterID: "UNK_" + EncodeID("ǂǂ"),
				Normalized:  "ǂǂ",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rs.Resolve(tt.raw)
			if got != tt.expected {
				t.Errorf("Resolve(%q) = %+v, want %+v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestResolvedKnown(t *testing.T) {
	cat := fakeCatalog{
		graphemes: map[string]string{"p": "p"},
		sounds:    map[string]Sound{"p": {Grapheme: "p", Name: "voiceless bilabial stop consonant"}},
	}
	rs := NewResolver(cat)

	if !rs.Resolve("p").Known() {
		t.Error("expected resolved segment to report Known")
	}
	if rs.Resolve("zzz").Known() {
		t.Error("expected unknown segment to report !Known")
	}
}
