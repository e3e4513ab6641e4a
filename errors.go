package sheetdb

import (
	"errors"
	"fmt"

	"github.com/satishbabariya/sheetdb/query/ast"
	"github.com/satishbabariya/sheetdb/query/engine"
	"github.com/satishbabariya/sheetdb/source"
)

// Error kinds, re-exported so callers can match them without importing the
// subpackages they originate in.
var (
	// ErrInvalidQuery is returned for malformed query options: an
	// unrecognized operator, a negative limit or offset, or a select
	// referencing fields the sheet does not have.
	ErrInvalidQuery = ast.ErrInvalidQuery

	// ErrMultipleResults is returned by FindUnique when more than one row
	// matched.
	ErrMultipleResults = engine.ErrMultipleResults

	// ErrFetchFailed is returned when the sheet export cannot be retrieved.
	ErrFetchFailed = source.ErrFetchFailed

	// ErrParseFailed is returned when the sheet export is not valid CSV.
	ErrParseFailed = source.ErrParseFailed
)

// QueryError wraps any failure of a client operation with the operation
// name.
type QueryError struct {
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error { return e.Cause }

// Is checks if the error matches the target.
func (e *QueryError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// IsInvalidQuery checks if an error is a query configuration error.
func IsInvalidQuery(err error) bool {
	return errors.Is(err, ErrInvalidQuery)
}

// IsMultipleResults checks if an error is a FindUnique multiplicity error.
func IsMultipleResults(err error) bool {
	return errors.Is(err, ErrMultipleResults)
}

// IsFetchFailed checks if an error is a sheet retrieval failure.
func IsFetchFailed(err error) bool {
	return errors.Is(err, ErrFetchFailed)
}

// IsParseFailed checks if an error is a sheet decoding failure.
func IsParseFailed(err error) bool {
	return errors.Is(err, ErrParseFailed)
}
