package commands

import (
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/sheetdb/cli/internal/config"
	"github.com/satishbabariya/sheetdb/cli/internal/ui"
)

const quickstart = `# sheetdb

Your sheet is configured. Try:

` + "```" + `
sheetdb query --limit 10
sheetdb query --where 'age > 30' --order-by age:desc
sheetdb count --where 'name startsWith "A"'
` + "```" + `

Flags always win over the config file, so one-off queries against another
sheet just need ` + "`--url`" + ` or ` + "`--file`" + `.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a .sheetdb.yaml configuration interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit()
		},
	}
}

func runInit() error {
	var answers struct {
		SheetURL     string
		CacheTTL     string
		DefaultLimit int
	}

	questions := []*survey.Question{
		{
			Name:     "sheetURL",
			Prompt:   &survey.Input{Message: "Sheet CSV export URL:"},
			Validate: survey.Required,
		},
		{
			Name:   "cacheTTL",
			Prompt: &survey.Input{Message: "Snapshot cache TTL:", Default: "5m"},
		},
		{
			Name:   "defaultLimit",
			Prompt: &survey.Input{Message: "Default row limit (0 for unlimited):", Default: "0"},
		},
	}
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	ttl, err := time.ParseDuration(answers.CacheTTL)
	if err != nil {
		return fmt.Errorf("invalid cache TTL: %w", err)
	}

	cfg := &config.Config{
		SheetURL:     answers.SheetURL,
		CacheTTL:     ttl,
		DefaultLimit: answers.DefaultLimit,
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	ui.PrintSuccess("Configuration written to .sheetdb.yaml")
	ui.RenderMarkdown(quickstart)
	return nil
}
