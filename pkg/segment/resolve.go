package segment

// Sound is one entry of the canonical phoneme catalog.
type Sound struct {
	Grapheme string // canonical rendering, e.g. "pʰ"
	Name     string // prose description, e.g. "aspirated voiceless bilabial stop consonant"
}

// Catalog is the oracle segments are resolved against. GraphemeKey maps
// a source grapheme to a main-table key; Sound looks a key up in the
// main table. Both report a miss through the second result rather than
// an error, and the empty key is always a miss.
type Catalog interface {
	GraphemeKey(grapheme string) (string, bool)
	Sound(key string) (Sound, bool)
}

// Resolved is the outcome of resolving one raw segment. An unresolved
// segment is a value, not an error: it carries a "UNK_" identifier and
// empty grapheme and description.
type Resolved struct {
	ParameterID string
	Normalized  string
	Grapheme    string
	Description string
}

// Known reports whether resolution found a catalog entry.
func (r Resolved) Known() bool { return r.Grapheme != "" }

// Resolver resolves raw segment strings against a Catalog.
type Resolver struct {
	cat Catalog
}

// NewResolver creates a Resolver backed by the given catalog.
func NewResolver(cat Catalog) *Resolver {
	return &Resolver{cat: cat}
}

// Resolve normalizes raw and walks the fallback chain in strict order:
// the grapheme map is asked for the raw string, then for the normalized
// one; the resulting key (empty after a double miss) goes to the main
// table; a main-table miss is retried with the normalized string
// directly, bypassing the grapheme map.
func (rs *Resolver) Resolve(raw string) Resolved {
	normalized := Normalize(raw)

	key, ok := rs.cat.GraphemeKey(raw)
	if !ok {
		key, ok = rs.cat.GraphemeKey(normalized)
	}
	if !ok {
		key = ""
	}

	sound, known := rs.cat.Sound(key)
	if !known {
		sound, known = rs.cat.Sound(normalized)
	}

	if !known {
		return Resolved{
			ParameterID: "UNK_" + EncodeID(normalized),
			Normalized:  normalized,
		}
	}
	return Resolved{
		ParameterID: "BIPA_" + EncodeID(normalized),
		Normalized:  normalized,
		Grapheme:    sound.Grapheme,
		Description: sound.Name,
	}
}
