package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phonodata/jipa2cldf/pkg/cldf"
	"github.com/phonodata/jipa2cldf/pkg/config"
	"github.com/phonodata/jipa2cldf/pkg/db"
)

func newCreatedbCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "createdb",
		Short: "Load the CLDF dataset into a SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := config.NewLogger(cfg.Log)

			ds, err := cldf.Read(cfg.Dataset.CLDFDir)
			if err != nil {
				return fmt.Errorf("read dataset (run convert first?): %w", err)
			}

			if force {
				if err := os.Remove(cfg.Dataset.SQLitePath); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("remove %s: %w", cfg.Dataset.SQLitePath, err)
				}
			}

			conn, err := sql.Open("sqlite3", cfg.Dataset.SQLitePath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer conn.Close()

			if err := db.InitDB(conn); err != nil {
				return fmt.Errorf("create schema: %w", err)
			}
			counts, err := db.Load(cmd.Context(), conn, ds)
			if err != nil {
				return fmt.Errorf("load database: %w", err)
			}

			log.Info("database loaded",
				"path", cfg.Dataset.SQLitePath,
				"languages", counts.Languages,
				"parameters", counts.Parameters,
				"values", counts.Values)
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d values into %s\n", counts.Values, cfg.Dataset.SQLitePath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing database file")
	return cmd
}
