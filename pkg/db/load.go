package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/phonodata/jipa2cldf/pkg/cldf"
)

// Counts reports how many rows Load wrote per table.
type Counts struct {
	Languages   int
	Parameters  int
	Values      int
	Inventories int
}

// Load writes a complete dataset into the database in one transaction.
// Parent tables are filled first, so value rows always reference
// existing languages and parameters. On error nothing is written.
func Load(ctx context.Context, db *sql.DB, ds *cldf.Dataset) (Counts, error) {
	var counts Counts

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Counts{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, l := range ds.Languages {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO languages (id, name, macroarea, latitude, longitude, glottocode, iso639p3code, family_glottocode, family_name, glottolog_name)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, l.Name, l.Macroarea, l.Latitude, l.Longitude, l.Glottocode, l.ISOCode, l.FamilyGlottocode, l.FamilyName, l.GlottologName)
		if err != nil {
			return Counts{}, fmt.Errorf("insert language %s: %w", l.ID, err)
		}
		counts.Languages++
	}

	for _, p := range ds.Parameters {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO parameters (id, name, bipa, description) VALUES (?, ?, ?, ?)`,
			p.ID, p.Name, p.BIPA, p.Description)
		if err != nil {
			return Counts{}, fmt.Errorf("insert parameter %s: %w", p.ID, err)
		}
		counts.Parameters++
	}

	for _, inv := range ds.Inventories {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO inventories (id, name, contributor_id, source, url, tones) VALUES (?, ?, ?, ?, ?, ?)`,
			inv.ID, inv.Name, inv.ContributorID, inv.Source, inv.URL, inv.Tones)
		if err != nil {
			return Counts{}, fmt.Errorf("insert inventory %s: %w", inv.ID, err)
		}
		counts.Inventories++
	}

	for _, v := range ds.Values {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO "values" (id, language_id, parameter_id, value, marginal, contribution_id, source, catalog)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, v.LanguageID, v.ParameterID, v.Value, v.Marginal, v.ContributionID, v.Source, v.Catalog)
		if err != nil {
			return Counts{}, fmt.Errorf("insert value %s: %w", v.ID, err)
		}
		counts.Values++
	}

	if err := tx.Commit(); err != nil {
		return Counts{}, fmt.Errorf("commit: %w", err)
	}
	return counts, nil
}

// SegmentsByLanguage returns the distinct segments attested for one
// language, ordered by first occurrence in the value table.
func SegmentsByLanguage(ctx context.Context, db *sql.DB, languageID string) ([]cldf.Parameter, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT p.id, p.name, p.bipa, p.description
		 FROM parameters p
		 JOIN "values" v ON v.parameter_id = p.id
		 WHERE v.language_id = ?
		 GROUP BY p.id, p.name, p.bipa, p.description
		 ORDER BY MIN(CAST(v.id AS INTEGER))`, languageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cldf.Parameter
	for rows.Next() {
		var p cldf.Parameter
		if err := rows.Scan(&p.ID, &p.Name, &p.BIPA, &p.Description); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
