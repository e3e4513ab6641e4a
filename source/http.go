package source

import (
	"context"
	"net/http"
	"time"

	"github.com/satishbabariya/sheetdb/internal/debug"
	"github.com/satishbabariya/sheetdb/query/ast"
)

// HTTPSource fetches a published CSV export over HTTP, for example a
// spreadsheet's "publish to web" link.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTP creates a source for url with a default 30 second timeout.
func NewHTTP(url string) *HTTPSource {
	return NewHTTPWithClient(url, &http.Client{Timeout: 30 * time.Second})
}

// NewHTTPWithClient creates a source for url using the given HTTP client.
func NewHTTPWithClient(url string, client *http.Client) *HTTPSource {
	return &HTTPSource{url: url, client: client}
}

// Rows fetches and decodes the current sheet export.
func (s *HTTPSource) Rows(ctx context.Context) ([]ast.Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, &FetchError{URL: s.url, Cause: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.url, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: s.url, StatusCode: resp.StatusCode}
	}

	rows, err := DecodeCSV(resp.Body)
	if err != nil {
		return nil, err
	}
	debug.Debug("fetched sheet", "url", s.url, "rows", len(rows))
	return rows, nil
}
