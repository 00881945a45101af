package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sbmb"
)

// Ensure LoggingPageCache implements sbmb.PageCache.
var _ sbmb.PageCache = (*LoggingPageCache)(nil)

// LoggingPageCache wraps a PageCache with debug logging.
type LoggingPageCache struct {
	next   sbmb.PageCache
	logger *slog.Logger
}

// NewLoggingPageCache creates a new LoggingPageCache.
func NewLoggingPageCache(next sbmb.PageCache, logger *slog.Logger) *LoggingPageCache {
	return &LoggingPageCache{next: next, logger: logger}
}

// Get delegates to the wrapped cache and logs whether the page was found.
func (c *LoggingPageCache) Get(ctx context.Context, key sbmb.PageKey) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"page", key.String(),
			"hit", err == nil,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if err != nil && sbmb.ErrorCode(err) != sbmb.ENOTFOUND {
			attrs = append(attrs, "err", err)
		}
		c.logger.Debug("cache get", attrs...)
	}(time.Now())
	return c.next.Get(ctx, key)
}

// Put delegates to the wrapped cache and logs the operation.
func (c *LoggingPageCache) Put(ctx context.Context, key sbmb.PageKey, html string) (changed bool, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache put",
			"page", key.String(),
			"bytes", len(html),
			"changed", changed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Put(ctx, key, html)
}

// Keys delegates to the wrapped cache and logs the operation.
func (c *LoggingPageCache) Keys(ctx context.Context, base string) (keys []sbmb.PageKey, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache keys",
			"base", base,
			"count", len(keys),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Keys(ctx, base)
}
