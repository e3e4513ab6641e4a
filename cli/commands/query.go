package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sheetdb"
	"github.com/satishbabariya/sheetdb/cli/internal/config"
	"github.com/satishbabariya/sheetdb/cli/internal/ui"
	"github.com/satishbabariya/sheetdb/filter"
	"github.com/satishbabariya/sheetdb/query/ast"
	"github.com/satishbabariya/sheetdb/source"
)

type queryFlags struct {
	sheetFlags
	where   string
	orderBy []string
	selects []string
	limit   int
	offset  int
	first   bool
	last    bool
	unique  bool
	watch   bool
}

// NewQueryCommand creates the query command.
func NewQueryCommand(cfg *config.Config) *cobra.Command {
	var f queryFlags

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a find query against a sheet",
		Long: `Run a find query against a sheet and print the matching rows.

The --where expression is conjunctive:

    sheetdb query --where 'age > 30 AND name contains "li"'
    sheetdb query --where 'id in [1, 2]' --order-by age:desc --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), cfg, f)
		},
	}

	addSheetFlags(cmd, &f.sheetFlags)
	cmd.Flags().StringVar(&f.where, "where", "", "Filter expression")
	cmd.Flags().StringArrayVar(&f.orderBy, "order-by", nil, "Sort key, field or field:asc|desc (repeatable)")
	cmd.Flags().StringSliceVar(&f.selects, "select", nil, "Fields to return")
	cmd.Flags().IntVar(&f.limit, "limit", -1, "Maximum number of rows")
	cmd.Flags().IntVar(&f.offset, "offset", -1, "Number of rows to skip")
	cmd.Flags().BoolVar(&f.first, "first", false, "Return only the first matching row")
	cmd.Flags().BoolVar(&f.last, "last", false, "Return only the last matching row")
	cmd.Flags().BoolVar(&f.unique, "unique", false, "Expect exactly zero or one matching row")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "Re-run the query when the file changes (requires --file)")
	cmd.MarkFlagsMutuallyExclusive("first", "last", "unique")

	return cmd
}

func runQuery(ctx context.Context, cfg *config.Config, f queryFlags) error {
	client, cache, key, err := newClient(cfg, f.sheetFlags)
	if err != nil {
		return err
	}

	opts, err := buildOptions(cfg, f)
	if err != nil {
		return err
	}

	if !f.watch {
		return runFind(ctx, client, f, opts)
	}

	if f.file == "" {
		return errors.New("--watch requires --file")
	}
	return watchQuery(ctx, client, cache, key, f, opts)
}

func buildOptions(cfg *config.Config, f queryFlags) (ast.Options, error) {
	where, err := filter.Parse(f.where)
	if err != nil {
		return ast.Options{}, err
	}
	orderBy, err := parseOrderBy(f.orderBy)
	if err != nil {
		return ast.Options{}, err
	}

	opts := ast.Options{
		Where:   where,
		OrderBy: orderBy,
		Select:  f.selects,
	}
	switch {
	case f.limit >= 0:
		opts.Limit = ast.Int(f.limit)
	case cfg.DefaultLimit > 0:
		opts.Limit = ast.Int(cfg.DefaultLimit)
	}
	if f.offset >= 0 {
		opts.Offset = ast.Int(f.offset)
	}
	return opts, nil
}

func runFind(ctx context.Context, client *sheetdb.Client, f queryFlags, opts ast.Options) error {
	switch {
	case f.unique:
		row, err := client.FindUnique(ctx, opts)
		return renderSingle(f.selects, row, err)
	case f.first:
		row, err := client.FindFirst(ctx, opts)
		return renderSingle(f.selects, row, err)
	case f.last:
		row, err := client.FindLast(ctx, opts)
		return renderSingle(f.selects, row, err)
	default:
		rows, err := client.FindMany(ctx, opts)
		if err != nil {
			return err
		}
		return ui.RenderRows(f.selects, rows)
	}
}

func renderSingle(selected []string, row ast.Row, err error) error {
	if err != nil {
		return err
	}
	if row == nil {
		return ui.RenderRows(selected, nil)
	}
	return ui.RenderRows(selected, []ast.Row{row})
}

// watchQuery runs the query, then re-runs it each time the sheet file
// changes, until interrupted.
func watchQuery(ctx context.Context, client *sheetdb.Client, cache *source.Cache, key string, f queryFlags, opts ast.Options) error {
	render := func() {
		if err := runFind(ctx, client, f, opts); err != nil {
			ui.PrintError(err.Error())
		}
	}
	render()

	w, err := source.Watch(f.file, func() {
		cache.Invalidate(key)
		render()
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", f.file, err)
	}
	defer w.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	return nil
}
