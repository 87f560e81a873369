// Package config holds the converter configuration, loaded from an
// optional YAML file with environment-variable overrides.
// Priority: ENV > YAML > defaults (via env-default tags).
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root converter configuration.
type Config struct {
	Dataset  DatasetConfig  `yaml:"dataset"`
	Catalogs CatalogsConfig `yaml:"catalogs"`
	Log      LogConfig      `yaml:"log"`
}

// DatasetConfig points at the dataset directories and files.
type DatasetConfig struct {
	RawDir     string `yaml:"raw_dir"   env:"JIPA_RAW_DIR"   env-default:"raw"`
	Languages  string `yaml:"languages" env:"JIPA_LANGUAGES" env-default:"etc/languages.csv"`
	Sources    string `yaml:"sources"   env:"JIPA_SOURCES"   env-default:"raw/sources.bib"`
	CLDFDir    string `yaml:"cldf_dir"  env:"JIPA_CLDF_DIR"  env-default:"cldf"`
	SQLitePath string `yaml:"sqlite"    env:"JIPA_SQLITE"    env-default:"jipa.sqlite"`
}

// CatalogsConfig points at the reference data files and the URLs they
// are fetched from when missing.
type CatalogsConfig struct {
	GraphemesPath string `yaml:"graphemes_path" env:"JIPA_GRAPHEMES_PATH" env-default:"data/jipa.tsv"`
	GraphemesURL  string `yaml:"graphemes_url"  env:"JIPA_GRAPHEMES_URL"  env-default:"https://raw.githubusercontent.com/cldf-clts/clts/master/pkg/transcriptiondata/jipa.tsv"`
	SoundsPath    string `yaml:"sounds_path"    env:"JIPA_SOUNDS_PATH"    env-default:"data/sounds.tsv"`
	SoundsURL     string `yaml:"sounds_url"     env:"JIPA_SOUNDS_URL"     env-default:"https://raw.githubusercontent.com/cldf-clts/clts/master/data/sounds.tsv"`
	LanguoidsPath string `yaml:"languoids_path" env:"JIPA_LANGUOIDS_PATH" env-default:"data/languages.csv"`
	LanguoidsURL  string `yaml:"languoids_url"  env:"JIPA_LANGUOIDS_URL"  env-default:"https://raw.githubusercontent.com/glottolog/glottolog-cldf/master/cldf/languages.csv"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"JIPA_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"JIPA_LOG_FORMAT" env-default:"text"`
}

// Load reads the configuration. With a non-empty path the file must
// exist; otherwise environment variables and defaults apply.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	return &cfg, nil
}
