// Package pipeline drives the conversion of raw phoneme inventory
// files into a CLDF structure dataset.
//
// The conversion is one deterministic pass: files are processed in
// sorted order, every segment occurrence becomes exactly one value row,
// and parameters are recorded in first-seen order. Running the pipeline
// twice over the same input yields identical tables.
package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/phonodata/jipa2cldf/pkg/cldf"
	"github.com/phonodata/jipa2cldf/pkg/glottolog"
	"github.com/phonodata/jipa2cldf/pkg/inventory"
	"github.com/phonodata/jipa2cldf/pkg/segment"
)

// Stats summarizes one conversion run.
type Stats struct {
	Files      int
	Languages  int
	Values     int
	Parameters int
	Unknown    int
}

// Pipeline converts raw inventories into dataset tables. Catalog
// resolves segments to canonical sounds. Languoids, when set, enriches
// languages with family and geography. Log may be nil, in which case
// the default logger is used.
type Pipeline struct {
	Catalog   segment.Catalog
	Languoids *glottolog.Catalog
	Log       *slog.Logger
}

// NewPipeline creates a new Pipeline.
func NewPipeline(cat segment.Catalog, languoids *glottolog.Catalog, log *slog.Logger) *Pipeline {
	return &Pipeline{Catalog: cat, Languoids: languoids, Log: log}
}

// Run converts every *.txt file under rawDir into one dataset. Language
// metadata comes from the curated table at languagesPath, the
// bibliography from sourcesPath.
//
// Run itself recovers from data-quality problems (unknown segments,
// languages missing from the table, missing bibliography keys) by
// logging and carrying on; only I/O and malformed-table errors abort.
func (p *Pipeline) Run(rawDir, languagesPath, sourcesPath string) (*cldf.Dataset, Stats, error) {
	log := p.Log
	if log == nil {
		log = slog.Default()
	}
	start := time.Now()
	var stats Stats

	sources, err := cldf.ReadSources(sourcesPath)
	if err != nil {
		return nil, stats, fmt.Errorf("read sources: %w", err)
	}

	languages, sourceByLang, err := p.loadLanguages(languagesPath, log)
	if err != nil {
		return nil, stats, err
	}
	knownLang := make(map[string]bool, len(languages))
	for _, l := range languages {
		knownLang[l.ID] = true
	}

	files, err := filepath.Glob(filepath.Join(rawDir, "*.txt"))
	if err != nil {
		return nil, stats, fmt.Errorf("list raw files: %w", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		log.Warn("no raw inventory files found", "dir", rawDir)
	}

	resolver := segment.NewResolver(p.Catalog)

	var (
		values     []cldf.Value
		parameters []cldf.Parameter
		seen       = make(map[cldf.Parameter]bool)
		valueID    = 1
	)

	for _, path := range files {
		rec, err := inventory.ParseFile(path)
		if err != nil {
			return nil, stats, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
		stats.Files++

		langID := slug.Make(rec.LanguageName)
		if langID == "" {
			log.Warn("raw file has no usable language name", "file", filepath.Base(path))
		} else if !knownLang[langID] {
			log.Warn("language missing from language table", "language", langID, "file", filepath.Base(path))
			languages = append(languages, cldf.Language{ID: langID, Name: rec.LanguageName})
			knownLang[langID] = true
		}

		var source string
		if langID != "" {
			if s := sourceByLang[langID]; s != "" {
				source = s
			} else {
				log.Warn("no bibliography reference for language", "language", langID, "file", filepath.Base(path))
			}
		}

		segs := make([]string, 0, len(rec.Consonants)+len(rec.Vowels))
		segs = append(segs, rec.Consonants...)
		segs = append(segs, rec.Vowels...)

		for _, raw := range segs {
			res := resolver.Resolve(segment.ReduceAllophones(raw))
			if !res.Known() {
				stats.Unknown++
				log.Debug("segment not in catalog", "segment", raw, "language", langID)
			}

			param := cldf.Parameter{
				ID:          res.ParameterID,
				Name:        res.Normalized,
				BIPA:        res.Grapheme,
				Description: res.Description,
			}
			if !seen[param] {
				seen[param] = true
				parameters = append(parameters, param)
			}

			values = append(values, cldf.Value{
				ID:             strconv.Itoa(valueID),
				LanguageID:     langID,
				ParameterID:    res.ParameterID,
				Value:          raw,
				Marginal:       false,
				ContributionID: langID,
				Source:         source,
				Catalog:        cldf.CatalogName,
			})
			valueID++
		}

		log.Debug("converted inventory",
			"file", filepath.Base(path),
			"language", langID,
			"consonants", len(rec.Consonants),
			"vowels", len(rec.Vowels))
	}

	stats.Languages = len(languages)
	stats.Values = len(values)
	stats.Parameters = len(parameters)

	log.Info("conversion finished",
		"files", stats.Files,
		"languages", stats.Languages,
		"values", stats.Values,
		"parameters", stats.Parameters,
		"unknown", stats.Unknown,
		"elapsed", time.Since(start))

	return &cldf.Dataset{
		Languages:  languages,
		Parameters: parameters,
		Values:     values,
		Sources:    sources,
	}, stats, nil
}

// loadLanguages reads the curated language table and returns the
// language rows plus a map from language ID to bibliography key. Rows
// are enriched from the languoid catalog when a glottocode is present.
func (p *Pipeline) loadLanguages(path string, log *slog.Logger) ([]cldf.Language, map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open language table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read language table header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"ID", "Name"} {
		if _, ok := col[required]; !ok {
			return nil, nil, fmt.Errorf("language table %s: missing %s column", path, required)
		}
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var languages []cldf.Language
	sourceByLang := make(map[string]string)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read language table row: %w", err)
		}

		lang := cldf.Language{
			ID:         field(row, "ID"),
			Name:       field(row, "Name"),
			Glottocode: field(row, "Glottocode"),
			ISOCode:    field(row, "ISO639P3code"),
		}
		if lang.ID == "" {
			log.Warn("language table row without ID skipped", "name", lang.Name)
			continue
		}
		if src := field(row, "Source"); src != "" {
			sourceByLang[lang.ID] = src
		}

		if p.Languoids != nil && lang.Glottocode != "" {
			if gl, ok := p.Languoids.Languoid(lang.Glottocode); ok {
				lang.Macroarea = gl.Macroarea
				lang.Latitude = gl.Latitude
				lang.Longitude = gl.Longitude
				lang.GlottologName = gl.Name
				if fam, ok := p.Languoids.Family(gl); ok {
					lang.FamilyGlottocode = fam.Glottocode
					lang.FamilyName = fam.Name
				}
			} else {
				log.Warn("glottocode not in languoid catalog", "glottocode", lang.Glottocode, "language", lang.ID)
			}
		}

		languages = append(languages, lang)
	}

	return languages, sourceByLang, nil
}
