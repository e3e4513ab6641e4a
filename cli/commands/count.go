package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/sheetdb/cli/internal/config"
	"github.com/satishbabariya/sheetdb/filter"
	"github.com/satishbabariya/sheetdb/query/ast"
)

// NewCountCommand creates the count command.
func NewCountCommand(cfg *config.Config) *cobra.Command {
	var f sheetFlags
	var where string

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the rows matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, _, err := newClient(cfg, f)
			if err != nil {
				return err
			}
			w, err := filter.Parse(where)
			if err != nil {
				return err
			}
			n, err := client.Count(cmd.Context(), ast.Options{Where: w})
			if err != nil {
				return err
			}
			pterm.Info.Printfln("%d rows", n)
			return nil
		},
	}

	addSheetFlags(cmd, &f)
	cmd.Flags().StringVar(&where, "where", "", "Filter expression")

	return cmd
}
