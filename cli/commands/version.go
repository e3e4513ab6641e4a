package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sheetdb/cli/internal/update"
	"github.com/satishbabariya/sheetdb/cli/internal/version"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	var checkUpdate bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			fmt.Println(info.FullString())

			if checkUpdate {
				return update.Check(cmd.Context(), info.Version)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkUpdate, "check-update", false, "Check for a newer release")

	return cmd
}
