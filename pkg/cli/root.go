// Package cli implements the jipa2cldf command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phonodata/jipa2cldf/pkg/config"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jipa2cldf",
		Short: "Convert JIPA phoneme inventories to a CLDF dataset",
		Long: "jipa2cldf converts raw Journal of the IPA illustration inventories\n" +
			"into a CLDF StructureDataset: one value row per attested segment,\n" +
			"deduplicated parameters and Glottolog-enriched languages.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (JIPA_* env vars and defaults apply when omitted)")

	rootCmd.AddCommand(
		newConvertCmd(),
		newFetchCmd(),
		newCreatedbCmd(),
		newValidateCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig resolves the configuration for one command invocation.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	return config.Load(path)
}
