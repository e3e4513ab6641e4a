// Package source provides row-set collaborators for the query engine:
// HTTP and file backed CSV sheets, a shared TTL snapshot cache, and a file
// watcher for invalidation.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/satishbabariya/sheetdb/query/ast"
)

// Error kinds for sheet retrieval and decoding.
var (
	// ErrFetchFailed is returned when the sheet export cannot be retrieved.
	ErrFetchFailed = errors.New("sheet fetch failed")

	// ErrParseFailed is returned when the sheet export is not valid CSV.
	ErrParseFailed = errors.New("sheet parse failed")
)

// Source yields the current snapshot of rows for one sheet.
type Source interface {
	Rows(ctx context.Context) ([]ast.Row, error)
}

// FetchError reports a failed retrieval of a sheet export, with the HTTP
// status code when the server answered at all.
type FetchError struct {
	URL        string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error { return e.Cause }

// Is marks FetchError as an ErrFetchFailed.
func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// ParseError reports malformed CSV text in a sheet export.
type ParseError struct {
	Line  int
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parsing sheet line %d: %v", e.Line, e.Cause)
	}
	return fmt.Sprintf("parsing sheet: %v", e.Cause)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Cause }

// Is marks ParseError as an ErrParseFailed.
func (e *ParseError) Is(target error) bool { return target == ErrParseFailed }
