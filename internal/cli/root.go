// Package cli implements the platewise command line tool.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/platewise/backend/internal/logging"
)

const rootCmdExample = `  # Print the nutrition facts label of a product record
  platewise normalize barcode --file product.json

  # Normalize a manual entry from stdin as JSON
  echo '{"calories":"120","fat":"3,5"}' | platewise normalize manual --json

  # Look up barcodes on OpenFoodFacts
  platewise lookup 3017620422003 5449000000996`

// NewRootCmd creates the root command of the platewise CLI
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "platewise",
		Short:         "Normalize food nutrition data",
		Long:          "platewise: normalize barcode, manual and recipe nutrition data to per-serving nutrients",
		Version:       version,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", logging.FormatConsole, "log format (console or json)")
	cmd.PersistentFlags().Bool("json", false, "print JSON instead of a label")

	cmd.AddCommand(newNormalizeCmd(), newLookupCmd())
	return cmd
}

// loggerFor builds the logger for a command from the persistent flags
func loggerFor(cmd *cobra.Command) zerolog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	return logging.NewWithWriter(logging.Config{Level: level, Format: format}, cmd.ErrOrStderr())
}

func jsonOutput(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")
	return asJSON
}
