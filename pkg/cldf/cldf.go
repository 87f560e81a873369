// Package cldf holds the converted dataset, a CLDF StructureDataset,
// with readers, writers and validation for its on-disk tables.
package cldf

import (
	"github.com/nickng/bibtex"
)

// CatalogName tags every value row with the transcription data the
// segments were resolved against.
const CatalogName = "jipa"

// MetadataFile is the name of the dataset description document.
const MetadataFile = "StructureDataset-metadata.json"

// Value is one row of the value table: a single segment occurrence in
// one source. Values are never deduplicated.
type Value struct {
	ID             string
	LanguageID     string
	ParameterID    string
	Value          string
	Marginal       bool
	ContributionID string
	Source         string
	Catalog        string
}

// Parameter is one row of the parameter table: a deduplicated segment
// with its canonical description. BIPA and Description are empty for
// unresolved segments.
type Parameter struct {
	ID          string
	Name        string
	BIPA        string
	Description string
}

// Language is one row of the language table, enriched from Glottolog
// where a glottocode was available.
type Language struct {
	ID               string
	Name             string
	Macroarea        string
	Latitude         string
	Longitude        string
	Glottocode       string
	ISOCode          string
	FamilyGlottocode string
	FamilyName       string
	GlottologName    string
}

// Inventory is one row of the inventory contribution table. The table
// schema is part of the dataset even while no inventory rows are
// emitted yet.
type Inventory struct {
	ID            string
	Name          string
	ContributorID string
	Source        string
	URL           string
	Tones         string
}

// Dataset is a complete in-memory StructureDataset.
type Dataset struct {
	Languages   []Language
	Parameters  []Parameter
	Values      []Value
	Inventories []Inventory
	Sources     *bibtex.BibTex
}

// SourceKeys returns the set of citation keys in the bibliography.
func (ds *Dataset) SourceKeys() map[string]bool {
	keys := make(map[string]bool)
	if ds.Sources == nil {
		return keys
	}
	for _, entry := range ds.Sources.Entries {
		keys[entry.CiteName] = true
	}
	return keys
}
