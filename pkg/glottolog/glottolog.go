// Package glottolog looks languoids up in the Glottolog CLDF language
// table, for genealogical and geographic enrichment of the converted
// languages.
package glottolog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Languoid is one row of the Glottolog language table.
type Languoid struct {
	Glottocode string
	Name       string
	Macroarea  string
	Latitude   string
	Longitude  string
	ISOCode    string
	FamilyID   string
}

// Catalog is an in-memory index of languoids keyed by glottocode.
type Catalog struct {
	byID map[string]Languoid
}

// Load reads a Glottolog CLDF languages.csv export. The header decides
// column positions; ID and Name are required, the rest is optional and
// left empty when the column is absent.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open languoid table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	if _, ok := col["ID"]; !ok {
		return nil, fmt.Errorf("missing ID column in %s", path)
	}
	if _, ok := col["Name"]; !ok {
		return nil, fmt.Errorf("missing Name column in %s", path)
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	byID := make(map[string]Languoid)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		id := field(row, "ID")
		if id == "" {
			continue
		}
		byID[id] = Languoid{
			Glottocode: id,
			Name:       field(row, "Name"),
			Macroarea:  field(row, "Macroarea"),
			Latitude:   field(row, "Latitude"),
			Longitude:  field(row, "Longitude"),
			ISOCode:    field(row, "ISO639P3code"),
			FamilyID:   field(row, "Family_ID"),
		}
	}

	return &Catalog{byID: byID}, nil
}

// Len returns the number of loaded languoids.
func (c *Catalog) Len() int { return len(c.byID) }

// Languoid returns the languoid for a glottocode.
func (c *Catalog) Languoid(glottocode string) (Languoid, bool) {
	l, ok := c.byID[glottocode]
	return l, ok
}

// Family returns the top-level family of l. Isolates and top-level
// families themselves have no family and report false.
func (c *Catalog) Family(l Languoid) (Languoid, bool) {
	if l.FamilyID == "" {
		return Languoid{}, false
	}
	f, ok := c.byID[l.FamilyID]
	return f, ok
}
