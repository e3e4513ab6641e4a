package source

import (
	"context"

	"github.com/spf13/afero"

	"github.com/satishbabariya/sheetdb/query/ast"
)

// FileSource reads a CSV sheet from the filesystem. Pair it with Watch and
// a Cache to pick up edits to the file.
type FileSource struct {
	path string
	fs   afero.Fs
}

// NewFile creates a source reading path from the OS filesystem.
func NewFile(path string) *FileSource {
	return NewFileWithFs(path, afero.NewOsFs())
}

// NewFileWithFs creates a source reading path from fs. Tests use an
// in-memory filesystem here.
func NewFileWithFs(path string, fs afero.Fs) *FileSource {
	return &FileSource{path: path, fs: fs}
}

// Rows reads and decodes the current contents of the file.
func (s *FileSource) Rows(ctx context.Context) ([]ast.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.fs.Open(s.path)
	if err != nil {
		return nil, &FetchError{URL: s.path, Cause: err}
	}
	defer f.Close()
	return DecodeCSV(f)
}
