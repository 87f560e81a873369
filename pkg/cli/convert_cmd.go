package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phonodata/jipa2cldf/pkg/cldf"
	"github.com/phonodata/jipa2cldf/pkg/clts"
	"github.com/phonodata/jipa2cldf/pkg/config"
	"github.com/phonodata/jipa2cldf/pkg/glottolog"
	"github.com/phonodata/jipa2cldf/pkg/pipeline"
)

func newConvertCmd() *cobra.Command {
	var rawDir, languages, sources, cldfDir string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert raw inventory files into CLDF tables",
		Long: "Reads every *.txt file in the raw directory, resolves segments\n" +
			"against the transcription catalog and writes the CLDF tables.\n" +
			"The dataset is validated before anything is written.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if rawDir != "" {
				cfg.Dataset.RawDir = rawDir
			}
			if languages != "" {
				cfg.Dataset.Languages = languages
			}
			if sources != "" {
				cfg.Dataset.Sources = sources
			}
			if cldfDir != "" {
				cfg.Dataset.CLDFDir = cldfDir
			}
			log := config.NewLogger(cfg.Log)

			catalog, err := clts.Load(cfg.Catalogs.GraphemesPath, cfg.Catalogs.SoundsPath)
			if err != nil {
				return fmt.Errorf("load transcription catalog (run fetch first?): %w", err)
			}
			languoids, err := glottolog.Load(cfg.Catalogs.LanguoidsPath)
			if err != nil {
				return fmt.Errorf("load languoid catalog (run fetch first?): %w", err)
			}

			ds, stats, err := pipeline.NewPipeline(catalog, languoids, log).Run(
				cfg.Dataset.RawDir, cfg.Dataset.Languages, cfg.Dataset.Sources)
			if err != nil {
				return err
			}
			if err := cldf.Validate(ds); err != nil {
				return fmt.Errorf("converted dataset is invalid: %w", err)
			}
			if err := cldf.Write(cfg.Dataset.CLDFDir, ds); err != nil {
				return fmt.Errorf("write dataset: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Converted %d inventories: %d values, %d segments, %d languages\n",
				stats.Files, stats.Values, stats.Parameters, stats.Languages)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote CLDF dataset to %s\n", cfg.Dataset.CLDFDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&rawDir, "raw-dir", "", "Directory of raw inventory files (overrides config)")
	cmd.Flags().StringVar(&languages, "languages", "", "Path to the curated language table (overrides config)")
	cmd.Flags().StringVar(&sources, "sources", "", "Path to the BibTeX bibliography (overrides config)")
	cmd.Flags().StringVar(&cldfDir, "cldf-dir", "", "Output directory for the CLDF dataset (overrides config)")
	return cmd
}
