package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sheetdb/cli/internal/config"
	"github.com/satishbabariya/sheetdb/internal/debug"
)

var (
	// Version information (set by build)
	Version = "dev"
	Commit  = "unknown"
)

// Execute is the main entry point for the CLI.
func Execute() error {
	var debugFlag bool

	rootCmd := &cobra.Command{
		Use:     "sheetdb",
		Short:   "Query published spreadsheet CSV exports",
		Long:    "sheetdb treats a published sheet's CSV export as a small read-only table you can filter, sort and paginate",
		Version: fmt.Sprintf("%s (commit: %s)", Version, Commit),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.Init(debugFlag)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rootCmd.AddCommand(NewQueryCommand(cfg))
	rootCmd.AddCommand(NewCountCommand(cfg))
	rootCmd.AddCommand(NewInitCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd.Execute()
}
