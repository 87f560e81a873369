// Package clts loads the cross-linguistic transcription-system data
// that segments are resolved against: a per-source grapheme map and the
// BIPA sounds table, both tab-separated files with a header row.
package clts

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phonodata/jipa2cldf/pkg/segment"
)

// Catalog is an in-memory index over the two reference tables. It
// satisfies segment.Catalog; lookups report misses through the second
// result and never fail.
type Catalog struct {
	graphemes map[string]string
	sounds    map[string]segment.Sound
}

var _ segment.Catalog = (*Catalog)(nil)

// Load reads the grapheme map (columns GRAPHEME, BIPA) and the sounds
// table (columns GRAPHEME, NAME) from the given TSV files. Extra
// columns are ignored; on duplicate graphemes the last row wins.
func Load(graphemesPath, soundsPath string) (*Catalog, error) {
	graphemes, err := readTSV(graphemesPath, "GRAPHEME", "BIPA")
	if err != nil {
		return nil, fmt.Errorf("load grapheme map: %w", err)
	}

	names, err := readTSV(soundsPath, "GRAPHEME", "NAME")
	if err != nil {
		return nil, fmt.Errorf("load sounds table: %w", err)
	}

	sounds := make(map[string]segment.Sound, len(names))
	for grapheme, name := range names {
		sounds[grapheme] = segment.Sound{Grapheme: grapheme, Name: name}
	}

	return &Catalog{graphemes: graphemes, sounds: sounds}, nil
}

// GraphemeKey maps a source grapheme to its sounds-table key.
func (c *Catalog) GraphemeKey(grapheme string) (string, bool) {
	key, ok := c.graphemes[grapheme]
	return key, ok
}

// Sound looks a key up in the sounds table. The empty key is always a
// miss.
func (c *Catalog) Sound(key string) (segment.Sound, bool) {
	if key == "" {
		return segment.Sound{}, false
	}
	s, ok := c.sounds[key]
	return s, ok
}

// Graphemes returns the number of grapheme-map entries.
func (c *Catalog) Graphemes() int { return len(c.graphemes) }

// Sounds returns the number of sounds-table entries.
func (c *Catalog) Sounds() int { return len(c.sounds) }

// readTSV reads a headered TSV file and returns a map from the keyCol
// value to the valCol value, row by row.
func readTSV(path, keyCol, valCol string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	keyIdx, valIdx := -1, -1
	for i, col := range header {
		switch col {
		case keyCol:
			keyIdx = i
		case valCol:
			valIdx = i
		}
	}
	if keyIdx < 0 || valIdx < 0 {
		return nil, fmt.Errorf("missing column %s or %s in %s", keyCol, valCol, path)
	}

	out := make(map[string]string)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if keyIdx >= len(row) || valIdx >= len(row) {
			continue
		}
		out[row[keyIdx]] = row[valIdx]
	}
	return out, nil
}
