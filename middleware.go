package sheetdb

import (
	"context"
	"time"

	"github.com/satishbabariya/sheetdb/query/ast"
)

// QueryInfo describes a query passing through the middleware chain.
type QueryInfo struct {
	// Operation is the operation name (findMany, findUnique, count, ...).
	Operation string

	// Options are the query options, read-only.
	Options ast.Options

	// Timestamp is when the query started.
	Timestamp time.Time
}

// QueryResult is the outcome of a query. Rows carries the result for the
// find operations; Count is set by count. Duration is how long the query
// took, set by the chain after the handler returns so middleware on the
// way out can observe it.
type QueryResult struct {
	Rows     []ast.Row
	Count    int
	Duration time.Duration
	Error    error
}

// Next is the function to call to continue the middleware chain.
type Next func(ctx context.Context, info QueryInfo) QueryResult

// Middleware is a function that can intercept query execution.
type Middleware func(ctx context.Context, info QueryInfo, next Next) QueryResult

// MiddlewareChain manages a chain of middleware.
type MiddlewareChain struct {
	middlewares []Middleware
}

// NewMiddlewareChain creates a new middleware chain.
func NewMiddlewareChain() *MiddlewareChain {
	return &MiddlewareChain{
		middlewares: []Middleware{},
	}
}

// Use adds middleware to the chain.
func (mc *MiddlewareChain) Use(mw Middleware) {
	mc.middlewares = append(mc.middlewares, mw)
}

// Execute runs the middleware chain and the final handler.
func (mc *MiddlewareChain) Execute(ctx context.Context, info QueryInfo, handler func(ctx context.Context, info QueryInfo) QueryResult) QueryResult {
	info.Timestamp = time.Now()

	if len(mc.middlewares) == 0 {
		result := handler(ctx, info)
		result.Duration = time.Since(info.Timestamp)
		return result
	}

	index := 0
	var next Next
	next = func(ctx context.Context, info QueryInfo) QueryResult {
		if index < len(mc.middlewares) {
			mw := mc.middlewares[index]
			index++
			return mw(ctx, info, next)
		}
		result := handler(ctx, info)
		result.Duration = time.Since(info.Timestamp)
		return result
	}

	return next(ctx, info)
}

// LoggingMiddleware creates a middleware that logs queries.
func LoggingMiddleware(logger Logger) Middleware {
	return func(ctx context.Context, info QueryInfo, next Next) QueryResult {
		logger.Debug("query started", "operation", info.Operation)

		result := next(ctx, info)

		if result.Error != nil {
			logger.Error("query failed",
				"operation", info.Operation,
				"duration", result.Duration,
				"error", result.Error,
			)
		} else {
			logger.Debug("query completed",
				"operation", info.Operation,
				"duration", result.Duration,
				"rows", len(result.Rows),
			)
		}

		return result
	}
}

// TimeoutMiddleware creates a middleware that enforces a per-query timeout.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(ctx context.Context, info QueryInfo, next Next) QueryResult {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		resultCh := make(chan QueryResult, 1)
		go func() {
			resultCh <- next(ctx, info)
		}()

		select {
		case result := <-resultCh:
			return result
		case <-ctx.Done():
			return QueryResult{Error: ctx.Err()}
		}
	}
}
