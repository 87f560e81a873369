package cldf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const termsBase = "http://cldf.clld.org/v1.0/terms.rdf#"

type metadata struct {
	Context    []any   `json:"@context"`
	ConformsTo string  `json:"dc:conformsTo"`
	Identifier string  `json:"dc:identifier"`
	Source     string  `json:"dc:source"`
	Tables     []table `json:"tables"`
}

type table struct {
	URL        string      `json:"url"`
	ConformsTo string      `json:"dc:conformsTo,omitempty"`
	Schema     tableSchema `json:"tableSchema"`
}

type tableSchema struct {
	Columns     []column     `json:"columns"`
	PrimaryKey  []string     `json:"primaryKey,omitempty"`
	ForeignKeys []foreignKey `json:"foreignKeys,omitempty"`
}

type column struct {
	Name        string `json:"name"`
	PropertyURL string `json:"propertyUrl,omitempty"`
	Datatype    string `json:"datatype,omitempty"`
	Separator   string `json:"separator,omitempty"`
}

type foreignKey struct {
	ColumnReference []string  `json:"columnReference"`
	Reference       reference `json:"reference"`
}

type reference struct {
	Resource        string   `json:"resource"`
	ColumnReference []string `json:"columnReference"`
}

// writeMetadata emits the CSVW description of the dataset: one table
// entry per emitted csv file, with the CLDF property terms the columns
// correspond to.
func writeMetadata(dir string) error {
	doc := metadata{
		Context:    []any{"http://www.w3.org/ns/csvw", map[string]string{"@language": "en"}},
		ConformsTo: termsBase + "StructureDataset",
		Identifier: CatalogName,
		Source:     "sources.bib",
		Tables: []table{
			{
				URL:        "values.csv",
				ConformsTo: termsBase + "ValueTable",
				Schema: tableSchema{
					Columns: []column{
						{Name: "ID", PropertyURL: termsBase + "id", Datatype: "string"},
						{Name: "Language_ID", PropertyURL: termsBase + "languageReference", Datatype: "string"},
						{Name: "Parameter_ID", PropertyURL: termsBase + "parameterReference", Datatype: "string"},
						{Name: "Value", PropertyURL: termsBase + "value", Datatype: "string"},
						{Name: "Marginal", Datatype: "boolean"},
						{Name: "Contribution_ID", Datatype: "string"},
						{Name: "Source", PropertyURL: termsBase + "source", Datatype: "string", Separator: ";"},
						{Name: "Catalog", Datatype: "string"},
					},
					PrimaryKey: []string{"ID"},
					ForeignKeys: []foreignKey{
						{
							ColumnReference: []string{"Language_ID"},
							Reference:       reference{Resource: "languages.csv", ColumnReference: []string{"ID"}},
						},
						{
							ColumnReference: []string{"Parameter_ID"},
							Reference:       reference{Resource: "parameters.csv", ColumnReference: []string{"ID"}},
						},
					},
				},
			},
			{
				URL:        "parameters.csv",
				ConformsTo: termsBase + "ParameterTable",
				Schema: tableSchema{
					Columns: []column{
						{Name: "ID", PropertyURL: termsBase + "id", Datatype: "string"},
						{Name: "Name", PropertyURL: termsBase + "name", Datatype: "string"},
						{Name: "BIPA", Datatype: "string"},
						{Name: "Description", PropertyURL: termsBase + "description", Datatype: "string"},
					},
					PrimaryKey: []string{"ID"},
				},
			},
			{
				URL:        "languages.csv",
				ConformsTo: termsBase + "LanguageTable",
				Schema: tableSchema{
					Columns: []column{
						{Name: "ID", PropertyURL: termsBase + "id", Datatype: "string"},
						{Name: "Name", PropertyURL: termsBase + "name", Datatype: "string"},
						{Name: "Macroarea", PropertyURL: termsBase + "macroarea", Datatype: "string"},
						{Name: "Latitude", PropertyURL: termsBase + "latitude", Datatype: "decimal"},
						{Name: "Longitude", PropertyURL: termsBase + "longitude", Datatype: "decimal"},
						{Name: "Glottocode", PropertyURL: termsBase + "glottocode", Datatype: "string"},
						{Name: "ISO639P3code", PropertyURL: termsBase + "iso639P3code", Datatype: "string"},
						{Name: "Family_Glottocode", Datatype: "string"},
						{Name: "Family_Name", Datatype: "string"},
						{Name: "Glottolog_Name", Datatype: "string"},
					},
					PrimaryKey: []string{"ID"},
				},
			},
			{
				URL: "inventories.csv",
				Schema: tableSchema{
					Columns: []column{
						{Name: "ID", Datatype: "string"},
						{Name: "Name", Datatype: "string"},
						{Name: "Contributor_ID", Datatype: "string"},
						{Name: "Source", PropertyURL: termsBase + "source", Datatype: "string", Separator: ";"},
						{Name: "URL", Datatype: "string"},
						{Name: "Tones", Datatype: "string"},
					},
					PrimaryKey: []string{"ID"},
				},
			},
		},
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(filepath.Join(dir, MetadataFile), data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}
