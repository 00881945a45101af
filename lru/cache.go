// Package lru keeps recently used overview pages in memory in front of a
// persistent sbmb.PageCache.
package lru

import (
	"context"

	"github.com/fwojciec/sbmb"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of pages kept in memory.
const DefaultSize = 64

// Compile-time interface verification.
var _ sbmb.PageCache = (*PageCache)(nil)

// PageCache serves pages from memory and falls through to the wrapped
// cache on a miss.
type PageCache struct {
	next  sbmb.PageCache
	pages *lru.Cache[sbmb.PageKey, string]
}

// NewPageCache wraps next with an in-memory cache holding up to size pages.
func NewPageCache(next sbmb.PageCache, size int) (*PageCache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	pages, err := lru.New[sbmb.PageKey, string](size)
	if err != nil {
		return nil, err
	}
	return &PageCache{next: next, pages: pages}, nil
}

// Get returns the page from memory or from the wrapped cache.
func (c *PageCache) Get(ctx context.Context, key sbmb.PageKey) (string, error) {
	if html, ok := c.pages.Get(key); ok {
		return html, nil
	}
	html, err := c.next.Get(ctx, key)
	if err != nil {
		return "", err
	}
	c.pages.Add(key, html)
	return html, nil
}

// Put writes through to the wrapped cache.
func (c *PageCache) Put(ctx context.Context, key sbmb.PageKey, html string) (bool, error) {
	changed, err := c.next.Put(ctx, key, html)
	if err != nil {
		c.pages.Remove(key)
		return false, err
	}
	c.pages.Add(key, html)
	return changed, nil
}

// Keys delegates to the wrapped cache.
func (c *PageCache) Keys(ctx context.Context, base string) ([]sbmb.PageKey, error) {
	return c.next.Keys(ctx, base)
}

// Len returns the number of pages held in memory.
func (c *PageCache) Len() int {
	return c.pages.Len()
}
