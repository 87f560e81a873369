// Package db loads a converted dataset into SQLite for ad-hoc querying.
package db

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// schemaSQL mirrors the dataset tables one to one, so a loaded database
// answers the same questions as the CSV files. "values" is quoted
// because it is an SQL keyword.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS languages (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    macroarea TEXT,
    latitude TEXT,
    longitude TEXT,
    glottocode TEXT,
    iso639p3code TEXT,
    family_glottocode TEXT,
    family_name TEXT,
    glottolog_name TEXT
);

CREATE TABLE IF NOT EXISTS parameters (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    bipa TEXT,
    description TEXT
);

CREATE TABLE IF NOT EXISTS inventories (
    id TEXT PRIMARY KEY,
    name TEXT,
    contributor_id TEXT,
    source TEXT,
    url TEXT,
    tones TEXT
);

CREATE TABLE IF NOT EXISTS "values" (
    id TEXT PRIMARY KEY,
    language_id TEXT NOT NULL REFERENCES languages(id),
    parameter_id TEXT NOT NULL REFERENCES parameters(id),
    value TEXT NOT NULL,
    marginal INTEGER NOT NULL DEFAULT 0,
    contribution_id TEXT,
    source TEXT,
    catalog TEXT
);

CREATE INDEX IF NOT EXISTS idx_values_language ON "values"(language_id);

CREATE INDEX IF NOT EXISTS idx_values_parameter ON "values"(parameter_id);
`

// InitDB creates the schema on the given DB connection using the embedded SQL.
func InitDB(db *sql.DB) error {
	stmts := strings.Split(schemaSQL, ";")
	for _, s := range stmts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
