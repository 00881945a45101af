package mock

import (
	"context"

	"github.com/fwojciec/sbmb"
)

var _ sbmb.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of sbmb.PageCache.
type PageCache struct {
	GetFn  func(ctx context.Context, key sbmb.PageKey) (string, error)
	PutFn  func(ctx context.Context, key sbmb.PageKey, html string) (bool, error)
	KeysFn func(ctx context.Context, base string) ([]sbmb.PageKey, error)
}

func (c *PageCache) Get(ctx context.Context, key sbmb.PageKey) (string, error) {
	return c.GetFn(ctx, key)
}

func (c *PageCache) Put(ctx context.Context, key sbmb.PageKey, html string) (bool, error) {
	return c.PutFn(ctx, key, html)
}

func (c *PageCache) Keys(ctx context.Context, base string) ([]sbmb.PageKey, error) {
	return c.KeysFn(ctx, base)
}
