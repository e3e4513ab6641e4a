// Package sheetdb is a Prisma-style read-only query client for tabular
// data published as CSV, such as a spreadsheet's "publish to web" export.
// It treats one sheet as a miniature relational table and evaluates find
// queries (filter, order, paginate, project) entirely in memory.
package sheetdb

import (
	"context"
	"time"

	"github.com/satishbabariya/sheetdb/query/ast"
	"github.com/satishbabariya/sheetdb/query/engine"
	"github.com/satishbabariya/sheetdb/source"
)

// Source supplies row snapshots to a client. Any source.Source works, as
// does anything hand-built for tests.
type Source = engine.Source

// Logger is the minimal logging surface the client uses. *slog.Logger
// satisfies it directly.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// ClientConfig holds client configuration options.
type ClientConfig struct {
	// CacheTTL is how long Open keeps a fetched snapshot before refetching.
	CacheTTL time.Duration

	// CacheSize is how many distinct sheets Open's cache holds.
	CacheSize int

	// QueryTimeout bounds each query, fetch included. Zero disables it.
	QueryTimeout time.Duration

	// LogQueries enables query logging through Logger.
	LogQueries bool

	// Logger is the logger instance.
	Logger Logger

	// KeepIncompleteRows disables the historical policy of dropping rows
	// with any nil field before ordering.
	KeepIncompleteRows bool
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		CacheTTL:     5 * time.Minute,
		CacheSize:    8,
		QueryTimeout: 30 * time.Second,
	}
}

// Option is a function that configures the client.
type Option func(*ClientConfig)

// WithCacheTTL sets how long Open caches sheet snapshots.
func WithCacheTTL(d time.Duration) Option {
	return func(c *ClientConfig) {
		c.CacheTTL = d
	}
}

// WithQueryTimeout sets the per-query timeout.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *ClientConfig) {
		c.QueryTimeout = d
	}
}

// WithLogQueries enables or disables query logging.
func WithLogQueries(enabled bool) Option {
	return func(c *ClientConfig) {
		c.LogQueries = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *ClientConfig) {
		c.Logger = logger
	}
}

// WithKeepIncompleteRows keeps rows containing nil fields in ordered
// results instead of dropping them. This changes results relative to the
// historical behavior; see engine.Sort.
func WithKeepIncompleteRows() Option {
	return func(c *ClientConfig) {
		c.KeepIncompleteRows = true
	}
}

// Client queries one sheet. Every operation takes a fresh snapshot from
// the source, so clients are safe for concurrent use.
type Client struct {
	engine *engine.Engine
	config *ClientConfig
	mw     *MiddlewareChain
}

// New creates a client over an explicit source.
func New(src Source, opts ...Option) *Client {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	eng := engine.New(src)
	if config.KeepIncompleteRows {
		eng.SetDropIncompleteRows(false)
	}

	return &Client{
		engine: eng,
		config: config,
		mw:     NewMiddlewareChain(),
	}
}

// Open creates a client that fetches the CSV export at url through a TTL
// cache.
func Open(url string, opts ...Option) *Client {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	cache := source.NewCache(config.CacheSize, config.CacheTTL)
	src := cache.Wrap(url, source.NewHTTP(url))
	return newWithConfig(src, config)
}

// OpenFile creates a client reading a local CSV file through a TTL cache.
func OpenFile(path string, opts ...Option) *Client {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	cache := source.NewCache(config.CacheSize, config.CacheTTL)
	src := cache.Wrap(path, source.NewFile(path))
	return newWithConfig(src, config)
}

func newWithConfig(src Source, config *ClientConfig) *Client {
	eng := engine.New(src)
	if config.KeepIncompleteRows {
		eng.SetDropIncompleteRows(false)
	}
	return &Client{engine: eng, config: config, mw: NewMiddlewareChain()}
}

// Use adds middleware to the client.
func (c *Client) Use(mw Middleware) {
	c.mw.Use(mw)
}

// FindMany returns every row matching the options, after ordering,
// pagination and projection.
func (c *Client) FindMany(ctx context.Context, opts ast.Options) ([]ast.Row, error) {
	res := c.run(ctx, "findMany", opts, func(ctx context.Context) QueryResult {
		rows, err := c.engine.FindMany(ctx, opts)
		return QueryResult{Rows: rows, Error: err}
	})
	return res.Rows, res.Error
}

// FindUnique returns the single matching row, nil when nothing matches,
// and ErrMultipleResults when more than one row matched.
func (c *Client) FindUnique(ctx context.Context, opts ast.Options) (ast.Row, error) {
	res := c.run(ctx, "findUnique", opts, func(ctx context.Context) QueryResult {
		row, err := c.engine.FindUnique(ctx, opts)
		return singleResult(row, err)
	})
	return firstRow(res), res.Error
}

// FindFirst returns the first matching row, or nil when nothing matches.
func (c *Client) FindFirst(ctx context.Context, opts ast.Options) (ast.Row, error) {
	res := c.run(ctx, "findFirst", opts, func(ctx context.Context) QueryResult {
		row, err := c.engine.FindFirst(ctx, opts)
		return singleResult(row, err)
	})
	return firstRow(res), res.Error
}

// FindLast returns the last matching row, or nil when nothing matches.
func (c *Client) FindLast(ctx context.Context, opts ast.Options) (ast.Row, error) {
	res := c.run(ctx, "findLast", opts, func(ctx context.Context) QueryResult {
		row, err := c.engine.FindLast(ctx, opts)
		return singleResult(row, err)
	})
	return firstRow(res), res.Error
}

// Count returns the number of rows FindMany would return for the same
// options, pagination included.
func (c *Client) Count(ctx context.Context, opts ast.Options) (int, error) {
	res := c.run(ctx, "count", opts, func(ctx context.Context) QueryResult {
		n, err := c.engine.Count(ctx, opts)
		return QueryResult{Count: n, Error: err}
	})
	return res.Count, res.Error
}

func (c *Client) run(ctx context.Context, op string, opts ast.Options, fn func(ctx context.Context) QueryResult) QueryResult {
	if c.config.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.QueryTimeout)
		defer cancel()
	}

	info := QueryInfo{Operation: op, Options: opts}
	return c.mw.Execute(ctx, info, func(ctx context.Context, info QueryInfo) QueryResult {
		if c.config.LogQueries && c.config.Logger != nil {
			c.config.Logger.Debug("executing query", "operation", op)
		}
		result := fn(ctx)
		if result.Error != nil {
			result.Error = &QueryError{Operation: op, Cause: result.Error}
		}
		return result
	})
}

func singleResult(row ast.Row, err error) QueryResult {
	if err != nil || row == nil {
		return QueryResult{Error: err}
	}
	return QueryResult{Rows: []ast.Row{row}}
}

func firstRow(res QueryResult) ast.Row {
	if len(res.Rows) == 0 {
		return nil
	}
	return res.Rows[0]
}
