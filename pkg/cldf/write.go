package cldf

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var (
	valueHeader     = []string{"ID", "Language_ID", "Parameter_ID", "Value", "Marginal", "Contribution_ID", "Source", "Catalog"}
	parameterHeader = []string{"ID", "Name", "BIPA", "Description"}
	languageHeader  = []string{"ID", "Name", "Macroarea", "Latitude", "Longitude", "Glottocode", "ISO639P3code", "Family_Glottocode", "Family_Name", "Glottolog_Name"}
	inventoryHeader = []string{"ID", "Name", "Contributor_ID", "Source", "URL", "Tones"}
)

// Write serializes the dataset into dir: the four tables, the
// bibliography, and the metadata document. Existing files are
// overwritten.
func Write(dir string, ds *Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cldf dir: %w", err)
	}

	values := make([][]string, len(ds.Values))
	for i, v := range ds.Values {
		values[i] = []string{
			v.ID,
			v.LanguageID,
			v.ParameterID,
			v.Value,
			strconv.FormatBool(v.Marginal),
			v.ContributionID,
			v.Source,
			v.Catalog,
		}
	}
	if err := writeTable(dir, "values.csv", valueHeader, values); err != nil {
		return err
	}

	parameters := make([][]string, len(ds.Parameters))
	for i, p := range ds.Parameters {
		parameters[i] = []string{p.ID, p.Name, p.BIPA, p.Description}
	}
	if err := writeTable(dir, "parameters.csv", parameterHeader, parameters); err != nil {
		return err
	}

	languages := make([][]string, len(ds.Languages))
	for i, l := range ds.Languages {
		languages[i] = []string{
			l.ID,
			l.Name,
			l.Macroarea,
			l.Latitude,
			l.Longitude,
			l.Glottocode,
			l.ISOCode,
			l.FamilyGlottocode,
			l.FamilyName,
			l.GlottologName,
		}
	}
	if err := writeTable(dir, "languages.csv", languageHeader, languages); err != nil {
		return err
	}

	inventories := make([][]string, len(ds.Inventories))
	for i, inv := range ds.Inventories {
		inventories[i] = []string{inv.ID, inv.Name, inv.ContributorID, inv.Source, inv.URL, inv.Tones}
	}
	if err := writeTable(dir, "inventories.csv", inventoryHeader, inventories); err != nil {
		return err
	}

	bib := ""
	if ds.Sources != nil {
		bib = ds.Sources.String()
	}
	if err := os.WriteFile(filepath.Join(dir, "sources.bib"), []byte(bib), 0o644); err != nil {
		return fmt.Errorf("write sources.bib: %w", err)
	}

	return writeMetadata(dir)
}

func writeTable(dir, name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s rows: %w", name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return f.Close()
}
