// Package engine evaluates queries over in-memory row snapshots with a
// fixed pipeline: filter, order, paginate, project.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/satishbabariya/sheetdb/query/ast"
)

// ErrMultipleResults is returned by FindUnique when more than one row
// matches the query.
var ErrMultipleResults = errors.New("query matched multiple rows")

// Source supplies the current row snapshot. Implementations may fetch,
// cache or refresh internally; the engine only requires that Rows returns
// a fully materialized sequence. Failures surface to the engine's caller
// unchanged.
type Source interface {
	Rows(ctx context.Context) ([]ast.Row, error)
}

// Engine runs queries against snapshots from a Source. Every call is
// stateless: it takes a snapshot, transforms it through the pipeline and
// returns fresh sequences without mutating the snapshot, so concurrent
// queries against the same source are safe.
type Engine struct {
	source         Source
	dropIncomplete bool
}

// New creates an engine with the drop-incomplete-rows ordering policy
// enabled, matching historical query results.
func New(source Source) *Engine {
	return &Engine{source: source, dropIncomplete: true}
}

// SetDropIncompleteRows toggles whether ordering removes rows that have a
// nil value in any field before sorting. Disabling it keeps incomplete
// rows in ordered results but changes results relative to the original
// behavior; see Sort.
func (e *Engine) SetDropIncompleteRows(enabled bool) {
	e.dropIncomplete = enabled
}

// FindMany runs the full pipeline and returns every matching row. An empty
// sheet yields an empty, non-nil slice.
func (e *Engine) FindMany(ctx context.Context, opts ast.Options) ([]ast.Row, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rows, err := e.source.Rows(ctx)
	if err != nil {
		return nil, err
	}
	schema := schemaOf(rows)

	matched := make([]ast.Row, 0, len(rows))
	for _, r := range rows {
		if Matches(r, opts.Where) {
			matched = append(matched, r)
		}
	}

	ordered := Sort(matched, opts.OrderBy, e.dropIncomplete)
	paged := Paginate(ordered, opts.Offset, opts.Limit)
	return Project(paged, opts.Select, schema)
}

// FindUnique returns the single matching row, nil when nothing matches,
// and ErrMultipleResults when the query is not selective enough.
func (e *Engine) FindUnique(ctx context.Context, opts ast.Options) (ast.Row, error) {
	rows, err := e.FindMany(ctx, opts)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return rows[0], nil
	default:
		return nil, fmt.Errorf("%w: got %d", ErrMultipleResults, len(rows))
	}
}

// FindFirst returns the first matching row, or nil when nothing matches.
func (e *Engine) FindFirst(ctx context.Context, opts ast.Options) (ast.Row, error) {
	rows, err := e.FindMany(ctx, opts)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// FindLast returns the last matching row, or nil when nothing matches.
func (e *Engine) FindLast(ctx context.Context, opts ast.Options) (ast.Row, error) {
	rows, err := e.FindMany(ctx, opts)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[len(rows)-1], nil
}

// Count returns the number of rows FindMany would return for the same
// options, pagination included.
func (e *Engine) Count(ctx context.Context, opts ast.Options) (int, error) {
	rows, err := e.FindMany(ctx, opts)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// schemaOf reads the field-name set off the first row of a snapshot. All
// rows of one sheet share the same fields. An empty snapshot has no schema
// to validate a select against.
func schemaOf(rows []ast.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	schema := make([]string, 0, len(rows[0]))
	for f := range rows[0] {
		schema = append(schema, f)
	}
	return schema
}
