// Package slog provides sbmb service decorators that log through log/slog.
package slog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/sbmb"
)

// Ensure LoggingFetcher implements sbmb.Fetcher.
var _ sbmb.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every overview page request. Successful downloads are
// logged at info, failures at warn with their error code. Requests aborted
// by the caller are logged at debug only.
type LoggingFetcher struct {
	next   sbmb.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next sbmb.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		elapsed := time.Since(begin)
		switch {
		case err == nil:
			f.logger.Info("page fetched", "url", url, "bytes", len(html), "duration", elapsed)
		case errors.Is(err, context.Canceled):
			f.logger.Debug("page fetch canceled", "url", url, "duration", elapsed)
		default:
			f.logger.Warn("page fetch failed",
				"url", url,
				"code", sbmb.ErrorCode(err),
				"duration", elapsed,
				"err", err,
			)
		}
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	err := f.next.Close()
	if err != nil {
		f.logger.Warn("fetcher close failed", "err", err)
	}
	return err
}
