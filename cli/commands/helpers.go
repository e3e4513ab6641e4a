// Package commands implements the sheetdb CLI commands.
package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sheetdb"
	"github.com/satishbabariya/sheetdb/cli/internal/config"
	"github.com/satishbabariya/sheetdb/internal/debug"
	"github.com/satishbabariya/sheetdb/query/ast"
	"github.com/satishbabariya/sheetdb/source"
)

// sheetFlags selects which sheet a command reads.
type sheetFlags struct {
	url  string
	file string
	ttl  time.Duration
}

func addSheetFlags(cmd *cobra.Command, f *sheetFlags) {
	cmd.Flags().StringVar(&f.url, "url", "", "CSV export URL of the sheet")
	cmd.Flags().StringVar(&f.file, "file", "", "Path to a local CSV file")
	cmd.Flags().DurationVar(&f.ttl, "ttl", 0, "Snapshot cache TTL (defaults to the configured value)")
}

// newClient builds a client for the sheet named by flags or configuration,
// returning the cache and cache key so callers can invalidate on demand.
func newClient(cfg *config.Config, f sheetFlags) (*sheetdb.Client, *source.Cache, string, error) {
	ttl := f.ttl
	if ttl == 0 {
		ttl = cfg.CacheTTL
	}

	cache := source.NewCache(8, ttl)

	var (
		src sheetdb.Source
		key string
	)
	switch {
	case f.file != "":
		key = f.file
		src = cache.Wrap(key, source.NewFile(key))
	case f.url != "":
		key = f.url
		src = cache.Wrap(key, source.NewHTTP(key))
	case cfg.SheetURL != "":
		key = cfg.SheetURL
		src = cache.Wrap(key, source.NewHTTP(key))
	default:
		return nil, nil, "", fmt.Errorf("no sheet configured: pass --url or --file, or run `sheetdb init`")
	}

	client := sheetdb.New(src,
		sheetdb.WithCacheTTL(ttl),
		sheetdb.WithLogger(debug.Logger()),
		sheetdb.WithLogQueries(debug.Enabled()),
	)
	return client, cache, key, nil
}

// parseOrderBy parses repeated --order-by values of the form "field" or
// "field:asc"/"field:desc".
func parseOrderBy(specs []string) ([]ast.OrderBy, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	orderBy := make([]ast.OrderBy, 0, len(specs))
	for _, spec := range specs {
		field, dir, found := strings.Cut(spec, ":")
		if field == "" {
			return nil, fmt.Errorf("invalid order-by %q: missing field name", spec)
		}
		if !found {
			orderBy = append(orderBy, ast.OrderAsc(field))
			continue
		}
		switch ast.Direction(dir) {
		case ast.Asc:
			orderBy = append(orderBy, ast.OrderAsc(field))
		case ast.Desc:
			orderBy = append(orderBy, ast.OrderDesc(field))
		default:
			return nil, fmt.Errorf("invalid order-by %q: direction must be asc or desc", spec)
		}
	}
	return orderBy, nil
}
