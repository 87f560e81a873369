package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phonodata/jipa2cldf/pkg/cldf"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check referential integrity of the written CLDF dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ds, err := cldf.Read(cfg.Dataset.CLDFDir)
			if err != nil {
				return fmt.Errorf("read dataset: %w", err)
			}
			if err := cldf.Validate(ds); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Dataset in %s is valid: %d languages, %d parameters, %d values\n",
				cfg.Dataset.CLDFDir, len(ds.Languages), len(ds.Parameters), len(ds.Values))
			return nil
		},
	}
}
