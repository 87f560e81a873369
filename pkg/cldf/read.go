package cldf

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nickng/bibtex"
)

// Read loads a written dataset back from dir. Column positions follow
// each table's header, so column order is not significant.
func Read(dir string) (*Dataset, error) {
	ds := &Dataset{}

	cols, rows, err := readTable(filepath.Join(dir, "values.csv"))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		ds.Values = append(ds.Values, Value{
			ID:             field(cols, row, "ID"),
			LanguageID:     field(cols, row, "Language_ID"),
			ParameterID:    field(cols, row, "Parameter_ID"),
			Value:          field(cols, row, "Value"),
			Marginal:       field(cols, row, "Marginal") == "true",
			ContributionID: field(cols, row, "Contribution_ID"),
			Source:         field(cols, row, "Source"),
			Catalog:        field(cols, row, "Catalog"),
		})
	}

	cols, rows, err = readTable(filepath.Join(dir, "parameters.csv"))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		ds.Parameters = append(ds.Parameters, Parameter{
			ID:          field(cols, row, "ID"),
			Name:        field(cols, row, "Name"),
			BIPA:        field(cols, row, "BIPA"),
			Description: field(cols, row, "Description"),
		})
	}

	cols, rows, err = readTable(filepath.Join(dir, "languages.csv"))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		ds.Languages = append(ds.Languages, Language{
			ID:               field(cols, row, "ID"),
			Name:             field(cols, row, "Name"),
			Macroarea:        field(cols, row, "Macroarea"),
			Latitude:         field(cols, row, "Latitude"),
			Longitude:        field(cols, row, "Longitude"),
			Glottocode:       field(cols, row, "Glottocode"),
			ISOCode:          field(cols, row, "ISO639P3code"),
			FamilyGlottocode: field(cols, row, "Family_Glottocode"),
			FamilyName:       field(cols, row, "Family_Name"),
			GlottologName:    field(cols, row, "Glottolog_Name"),
		})
	}

	cols, rows, err = readTable(filepath.Join(dir, "inventories.csv"))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		ds.Inventories = append(ds.Inventories, Inventory{
			ID:            field(cols, row, "ID"),
			Name:          field(cols, row, "Name"),
			ContributorID: field(cols, row, "Contributor_ID"),
			Source:        field(cols, row, "Source"),
			URL:           field(cols, row, "URL"),
			Tones:         field(cols, row, "Tones"),
		})
	}

	data, err := os.ReadFile(filepath.Join(dir, "sources.bib"))
	if err != nil {
		return nil, fmt.Errorf("read sources.bib: %w", err)
	}
	bib := bibtex.NewBibTex()
	if len(bytes.TrimSpace(data)) > 0 {
		bib, err = bibtex.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse sources.bib: %w", err)
		}
	}
	ds.Sources = bib

	return ds, nil
}

// ReadSources parses a BibTeX bibliography file.
func ReadSources(path string) (*bibtex.BibTex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bibliography: %w", err)
	}
	defer f.Close()

	bib, err := bibtex.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse bibliography: %w", err)
	}
	return bib, nil
}

func readTable(path string) (map[string]int, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%s: missing header row", filepath.Base(path))
	}

	header := all[0]
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols, all[1:], nil
}

func field(cols map[string]int, row []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
