package source

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/satishbabariya/sheetdb/internal/debug"
	"github.com/satishbabariya/sheetdb/query/ast"
)

// Cache is a TTL snapshot cache shared by any number of sheet sources,
// keyed by sheet (URL, file path, tab name). Its lifecycle is explicit:
// construct, serve-or-fetch through Wrap, invalidate.
//
// Cached snapshots are handed out by reference. The engine never mutates
// rows, so sharing one snapshot across concurrent queries is safe.
type Cache struct {
	lru *expirable.LRU[string, []ast.Row]
}

// NewCache creates a cache holding up to maxSheets snapshots, each expiring
// ttl after it was stored so remote edits eventually show up. A ttl of zero
// keeps snapshots until they are invalidated or evicted.
func NewCache(maxSheets int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[string, []ast.Row](maxSheets, nil, ttl)}
}

// Wrap decorates src so its snapshots are served from the cache under key.
// Fetch failures are not cached.
func (c *Cache) Wrap(key string, src Source) Source {
	return &cachedSource{key: key, inner: src, cache: c}
}

// Invalidate drops the snapshot stored under key, forcing the next query
// to fetch.
func (c *Cache) Invalidate(key string) {
	c.lru.Remove(key)
}

// Purge drops every cached snapshot.
func (c *Cache) Purge() {
	c.lru.Purge()
}

type cachedSource struct {
	key   string
	inner Source
	cache *Cache
}

func (s *cachedSource) Rows(ctx context.Context) ([]ast.Row, error) {
	if rows, ok := s.cache.lru.Get(s.key); ok {
		debug.Debug("snapshot served from cache", "key", s.key, "rows", len(rows))
		return rows, nil
	}
	rows, err := s.inner.Rows(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.lru.Add(s.key, rows)
	return rows, nil
}
