package pipeline

import (
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"github.com/phonodata/jipa2cldf/pkg/cldf"
	"github.com/phonodata/jipa2cldf/pkg/clts"
	"github.com/phonodata/jipa2cldf/pkg/glottolog"
	"github.com/phonodata/jipa2cldf/pkg/segment"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cat, err := clts.Load(filepath.Join("testdata", "data", "jipa.tsv"), filepath.Join("testdata", "data", "sounds.tsv"))
	if err != nil {
		t.Fatalf("Load catalog failed: %v", err)
	}
	languoids, err := glottolog.Load(filepath.Join("testdata", "data", "languages.csv"))
	if err != nil {
		t.Fatalf("Load languoids failed: %v", err)
	}
	return NewPipeline(cat, languoids, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func runTestPipeline(t *testing.T, rawDir string) (*cldf.Dataset, Stats) {
	t.Helper()
	ds, stats, err := newTestPipeline(t).Run(
		rawDir,
		filepath.Join("testdata", "etc", "languages.csv"),
		filepath.Join("testdata", "raw", "sources.bib"),
	)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return ds, stats
}

func TestRun(t *testing.T) {
	ds, stats := runTestPipeline(t, filepath.Join("testdata", "raw"))

	want := Stats{Files: 2, Languages: 2, Values: 11, Parameters: 9, Unknown: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	if len(ds.Values) != 11 {
		t.Fatalf("got %d values, want 11", len(ds.Values))
	}
	first := cldf.Value{
		ID:             "1",
		LanguageID:     "hausa",
		ParameterID:    "BIPA_p_u0070",
		Value:          "p",
		Marginal:       false,
		ContributionID: "hausa",
		Source:         "hausa_schuh2001",
		Catalog:        "jipa",
	}
	if !reflect.DeepEqual(ds.Values[0], first) {
		t.Errorf("Values[0] = %+v, want %+v", ds.Values[0], first)
	}

	// The raw segment string survives unreduced in the value column.
	if got := ds.Values[2].Value; got != "k(ʰ)" {
		t.Errorf("Values[2].Value = %q, want %q", got, "k(ʰ)")
	}
	if got := ds.Values[2].ParameterID; got != "BIPA_k_u006B" {
		t.Errorf("Values[2].ParameterID = %q, want %q", got, "BIPA_k_u006B")
	}

	// A whole-token allophone keeps its parentheses in the value column
	// but resolves through the bare grapheme.
	if got := ds.Values[4].Value; got != "(ʔ)" {
		t.Errorf("Values[4].Value = %q, want %q", got, "(ʔ)")
	}
	if got, want := ds.Values[4].ParameterID, "BIPA_"+segment.EncodeID("ʔ"); got != want {
		t.Errorf("Values[4].ParameterID = %q, want %q", got, want)
	}

	last := cldf.Value{
		ID:             "11",
		LanguageID:     "kabardian",
		ParameterID:    "BIPA_a_u0061",
		Value:          "a",
		Marginal:       false,
		ContributionID: "kabardian",
		Source:         "kabardian_gordon2002",
		Catalog:        "jipa",
	}
	if !reflect.DeepEqual(ds.Values[10], last) {
		t.Errorf("Values[10] = %+v, want %+v", ds.Values[10], last)
	}

	wantParams := []string{
		"BIPA_p_u0070",
		"BIPA_t_u0074",
		"BIPA_k_u006B",
		"UNK_m_u006D",
		"BIPA_" + segment.EncodeID("ʔ"),
		"BIPA_a_u0061",
		"BIPA_i_u0069",
		"BIPA_ph_u0070u0068",
		"BIPA_g_u0067",
	}
	var gotParams []string
	for _, p := range ds.Parameters {
		gotParams = append(gotParams, p.ID)
	}
	if !reflect.DeepEqual(gotParams, wantParams) {
		t.Errorf("parameter order = %v, want %v", gotParams, wantParams)
	}

	ph := cldf.Parameter{
		ID:          "BIPA_ph_u0070u0068",
		Name:        "ph",
		BIPA:        "pʰ",
		Description: "aspirated voiceless bilabial stop consonant",
	}
	if !reflect.DeepEqual(ds.Parameters[7], ph) {
		t.Errorf("Parameters[7] = %+v, want %+v", ds.Parameters[7], ph)
	}
	unknown := cldf.Parameter{ID: "UNK_m_u006D", Name: "m"}
	if !reflect.DeepEqual(ds.Parameters[3], unknown) {
		t.Errorf("Parameters[3] = %+v, want %+v", ds.Parameters[3], unknown)
	}

	if err := cldf.Validate(ds); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestRunEnrichesLanguages(t *testing.T) {
	ds, _ := runTestPipeline(t, filepath.Join("testdata", "raw"))

	if len(ds.Languages) != 2 {
		t.Fatalf("got %d languages, want 2", len(ds.Languages))
	}
	hausa := cldf.Language{
		ID:               "hausa",
		Name:             "Hausa",
		Macroarea:        "Africa",
		Latitude:         "11.1513",
		Longitude:        "8.7804",
		Glottocode:       "haus1257",
		ISOCode:          "hau",
		FamilyGlottocode: "afro1255",
		FamilyName:       "Afro-Asiatic",
		GlottologName:    "Hausa",
	}
	if !reflect.DeepEqual(ds.Languages[0], hausa) {
		t.Errorf("Languages[0] = %+v, want %+v", ds.Languages[0], hausa)
	}
	kabardian := cldf.Language{
		ID:               "kabardian",
		Name:             "Kabardian",
		Macroarea:        "Eurasia",
		Latitude:         "43.5082",
		Longitude:        "43.3918",
		Glottocode:       "kaba1278",
		ISOCode:          "kbd",
		FamilyGlottocode: "abkh1242",
		FamilyName:       "Abkhaz-Adyge",
		GlottologName:    "Kabardian",
	}
	if !reflect.DeepEqual(ds.Languages[1], kabardian) {
		t.Errorf("Languages[1] = %+v, want %+v", ds.Languages[1], kabardian)
	}
}

func TestRunParameterDedup(t *testing.T) {
	ds, _ := runTestPipeline(t, filepath.Join("testdata", "raw"))

	// "p" occurs in both inventories: two value rows, one parameter row.
	var paramRows, valueRows int
	for _, p := range ds.Parameters {
		if p.ID == "BIPA_p_u0070" {
			paramRows++
		}
	}
	for _, v := range ds.Values {
		if v.ParameterID == "BIPA_p_u0070" {
			valueRows++
		}
	}
	if paramRows != 1 {
		t.Errorf("got %d parameter rows for p, want 1", paramRows)
	}
	if valueRows != 2 {
		t.Errorf("got %d value rows for p, want 2", valueRows)
	}
}

func TestRunDeterministic(t *testing.T) {
	ds1, _ := runTestPipeline(t, filepath.Join("testdata", "raw"))
	ds2, _ := runTestPipeline(t, filepath.Join("testdata", "raw"))

	if !reflect.DeepEqual(ds1.Values, ds2.Values) {
		t.Error("value tables differ between runs")
	}
	if !reflect.DeepEqual(ds1.Parameters, ds2.Parameters) {
		t.Error("parameter tables differ between runs")
	}
	if !reflect.DeepEqual(ds1.Languages, ds2.Languages) {
		t.Error("language tables differ between runs")
	}
}

func TestRunSequentialValueIDs(t *testing.T) {
	ds, stats := runTestPipeline(t, filepath.Join("testdata", "raw_single"))

	if stats.Values != 6 || stats.Parameters != 6 {
		t.Fatalf("stats = %+v, want 6 values and 6 parameters", stats)
	}
	wantSegments := []string{"p", "t", "k", "a", "i", "u"}
	for i, v := range ds.Values {
		if want := strconv.Itoa(i + 1); v.ID != want {
			t.Errorf("Values[%d].ID = %q, want %q", i, v.ID, want)
		}
		if v.Value != wantSegments[i] {
			t.Errorf("Values[%d].Value = %q, want %q", i, v.Value, wantSegments[i])
		}
		if v.LanguageID != "testlang" {
			t.Errorf("Values[%d].LanguageID = %q, want %q", i, v.LanguageID, "testlang")
		}
	}
}

func TestRunUnknownLanguage(t *testing.T) {
	ds, stats := runTestPipeline(t, filepath.Join("testdata", "raw_unmapped"))

	want := Stats{Files: 1, Languages: 3, Values: 3, Parameters: 3, Unknown: 0}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	// Amis is not in the curated table: a stub row keeps the dataset
	// consistent, the bibliography reference stays empty.
	stub := cldf.Language{ID: "amis", Name: "Amis"}
	if !reflect.DeepEqual(ds.Languages[2], stub) {
		t.Errorf("Languages[2] = %+v, want %+v", ds.Languages[2], stub)
	}
	for _, v := range ds.Values {
		if v.LanguageID != "amis" {
			t.Errorf("value %s has language %q, want %q", v.ID, v.LanguageID, "amis")
		}
		if v.Source != "" {
			t.Errorf("value %s has source %q, want empty", v.ID, v.Source)
		}
	}
	if err := cldf.Validate(ds); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestRunMissingLanguageName(t *testing.T) {
	ds, stats := runTestPipeline(t, filepath.Join("testdata", "raw_nolanguage"))

	if stats.Values != 1 {
		t.Fatalf("got %d values, want 1", stats.Values)
	}
	if got := ds.Values[0].LanguageID; got != "" {
		t.Errorf("Values[0].LanguageID = %q, want empty", got)
	}
	// The defect surfaces in validation, not as a silent drop.
	if err := cldf.Validate(ds); err == nil {
		t.Error("Validate passed for a value without a language")
	}
}

func TestRunEmptyRawDir(t *testing.T) {
	p := newTestPipeline(t)
	ds, stats, err := p.Run(
		t.TempDir(),
		filepath.Join("testdata", "etc", "languages.csv"),
		filepath.Join("testdata", "raw", "sources.bib"),
	)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := Stats{Files: 0, Languages: 2, Values: 0, Parameters: 0, Unknown: 0}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if len(ds.Values) != 0 {
		t.Errorf("got %d values, want 0", len(ds.Values))
	}
}

func TestRunMissingInputs(t *testing.T) {
	p := newTestPipeline(t)
	missing := filepath.Join(t.TempDir(), "missing")

	_, _, err := p.Run(filepath.Join("testdata", "raw"), missing, filepath.Join("testdata", "raw", "sources.bib"))
	if err == nil {
		t.Error("Run succeeded without a language table")
	}

	_, _, err = p.Run(filepath.Join("testdata", "raw"), filepath.Join("testdata", "etc", "languages.csv"), missing)
	if err == nil {
		t.Error("Run succeeded without a bibliography")
	}
}
