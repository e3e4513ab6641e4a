package engine

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/sheetdb/query/ast"
)

// Paginate applies offset, then limit, in that fixed order. Both clamp at
// the end of the slice; negative values are rejected earlier by
// Options.Validate.
func Paginate(rows []ast.Row, offset, limit *int) []ast.Row {
	if offset != nil {
		if *offset >= len(rows) {
			return []ast.Row{}
		}
		rows = rows[*offset:]
	}
	if limit != nil && *limit < len(rows) {
		rows = rows[:*limit]
	}
	return rows
}

// Project returns fresh rows containing exactly the requested fields. Every
// requested name must exist in the schema; all unknown names are reported
// together, not just the first. An empty schema, meaning an empty sheet,
// has nothing a select could violate, so any select is vacuously valid.
func Project(rows []ast.Row, fields []string, schema []string) ([]ast.Row, error) {
	if len(fields) == 0 {
		return rows, nil
	}

	if len(schema) > 0 {
		known := make(map[string]bool, len(schema))
		for _, f := range schema {
			known[f] = true
		}
		var unknown []string
		for _, f := range fields {
			if !known[f] {
				unknown = append(unknown, f)
			}
		}
		if len(unknown) > 0 {
			return nil, fmt.Errorf("%w: select references unknown fields: %s", ast.ErrInvalidQuery, strings.Join(unknown, ", "))
		}
	}

	out := make([]ast.Row, len(rows))
	for i, r := range rows {
		projected := make(ast.Row, len(fields))
		for _, f := range fields {
			projected[f] = r[f]
		}
		out[i] = projected
	}
	return out, nil
}
