package cldf

import (
	"errors"
	"fmt"
)

// ErrMissingSource reports a value whose source key has no entry in the
// bibliography.
var ErrMissingSource = errors.New("source not in bibliography")

// Validate checks the dataset's internal consistency: unique row IDs
// per table, value references resolving to existing languages and
// parameters, and every cited source present in the bibliography. The
// first problem found is returned.
func Validate(ds *Dataset) error {
	langs := make(map[string]bool, len(ds.Languages))
	for _, l := range ds.Languages {
		if l.ID == "" {
			return fmt.Errorf("language %q has an empty ID", l.Name)
		}
		if langs[l.ID] {
			return fmt.Errorf("duplicate language ID %q", l.ID)
		}
		langs[l.ID] = true
	}

	params := make(map[string]bool, len(ds.Parameters))
	for _, p := range ds.Parameters {
		if p.ID == "" {
			return fmt.Errorf("parameter %q has an empty ID", p.Name)
		}
		if params[p.ID] {
			return fmt.Errorf("duplicate parameter ID %q", p.ID)
		}
		params[p.ID] = true
	}

	sources := ds.SourceKeys()
	seen := make(map[string]bool, len(ds.Values))
	for _, v := range ds.Values {
		if v.ID == "" {
			return fmt.Errorf("value for %q has an empty ID", v.Value)
		}
		if seen[v.ID] {
			return fmt.Errorf("duplicate value ID %q", v.ID)
		}
		seen[v.ID] = true

		if !langs[v.LanguageID] {
			return fmt.Errorf("value %s: unknown language %q", v.ID, v.LanguageID)
		}
		if !params[v.ParameterID] {
			return fmt.Errorf("value %s: unknown parameter %q", v.ID, v.ParameterID)
		}
		if v.Source != "" && !sources[v.Source] {
			return fmt.Errorf("value %s: %w: %q", v.ID, ErrMissingSource, v.Source)
		}
	}

	return nil
}
