package engine

import (
	"sort"

	"github.com/satishbabariya/sheetdb/query/ast"
)

// Sort returns a stably sorted copy of rows. The input slice is never
// reordered; with an empty spec it is returned unchanged, nulls and all.
//
// When dropIncomplete is set, every row carrying a nil value in any field
// is removed before sorting, not just rows whose sort key is nil. That
// matches the results the original sheet exports produced, and callers
// that depend on them should keep the policy enabled (it is the engine
// default, see Engine.SetDropIncompleteRows).
func Sort(rows []ast.Row, spec []ast.OrderBy, dropIncomplete bool) []ast.Row {
	if len(spec) == 0 {
		return rows
	}

	out := make([]ast.Row, 0, len(rows))
	for _, r := range rows {
		if dropIncomplete && hasNullField(r) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		for _, key := range spec {
			c := Compare(out[i][key.Field], out[j][key.Field])
			if key.Direction == ast.Desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})

	return out
}

func hasNullField(row ast.Row) bool {
	for _, v := range row {
		if v == nil {
			return true
		}
	}
	return false
}
