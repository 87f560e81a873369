package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phonodata/jipa2cldf/pkg/config"
	"github.com/phonodata/jipa2cldf/pkg/fetch"
)

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the transcription and languoid catalogs",
		Long: "Downloads the reference data the converter resolves against:\n" +
			"the transcription data, the sound catalog and the Glottolog\n" +
			"language table. Files already on disk are left untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := config.NewLogger(cfg.Log)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			targets := []struct {
				path, url string
			}{
				{cfg.Catalogs.GraphemesPath, cfg.Catalogs.GraphemesURL},
				{cfg.Catalogs.SoundsPath, cfg.Catalogs.SoundsURL},
				{cfg.Catalogs.LanguoidsPath, cfg.Catalogs.LanguoidsURL},
			}
			for _, tgt := range targets {
				log.Info("ensuring catalog file", "path", tgt.path)
				if err := fetch.Ensure(ctx, tgt.path, tgt.url); err != nil {
					return fmt.Errorf("fetch %s: %w", tgt.path, err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Catalog files are in place")
			return nil
		},
	}
}
