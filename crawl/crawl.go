// Package crawl downloads yearly overview pages into the page cache.
// It coordinates throttling, retries and storage; parsing happens later
// from the cache.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/sbmb"
	"github.com/fwojciec/sbmb/bloom"
	"github.com/google/uuid"
)

// Harvester fetches overview pages for a range of years and languages.
type Harvester struct {
	Fetcher     sbmb.Fetcher
	Cache       sbmb.PageCache
	Throttle    *Throttle
	Logger      *slog.Logger
	RetryDelays []time.Duration

	// Refresh re-downloads pages that are already cached.
	Refresh bool

	// Prefilter loads the cached keys of the base URL into a Bloom filter
	// before harvesting. Pages the filter rules out skip the cache lookup.
	Prefilter bool
}

// Request describes the pages to harvest.
type Request struct {
	Base   string
	Labels sbmb.TypeLabels
	From   int
	To     int
}

// Keys returns the page keys of the request in fetch order: years
// ascending, languages in configuration order.
func (r Request) Keys() []sbmb.PageKey {
	if r.To < r.From {
		return nil
	}
	keys := make([]sbmb.PageKey, 0, (r.To-r.From+1)*len(r.Labels))
	for year := r.From; year <= r.To; year++ {
		for _, l := range r.Labels {
			keys = append(keys, sbmb.PageKey{Base: r.Base, Type: l.Label, Year: year})
		}
	}
	return keys
}

// Validate returns an error if the request cannot be harvested.
func (r Request) Validate() error {
	if r.Base == "" {
		return sbmb.Errorf(sbmb.EINVALID, "base URL required")
	}
	if err := r.Labels.Validate(); err != nil {
		return err
	}
	return sbmb.ValidateYears(r.From, r.To)
}

// Result holds the outcome of a harvest.
type Result struct {
	// Run identifies the harvest in log output.
	Run string

	Fetched int
	Skipped int
	Bytes   int

	// Unchanged counts fetched pages identical to their cached copy.
	Unchanged int
}

// ProgressEvent reports progress during a harvest.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Key       sbmb.PageKey
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressFetched
	ProgressUnchanged
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// Harvest downloads every page of the request and stores it in the cache.
// Pages are fetched one at a time. The first page that cannot be fetched
// or stored aborts the harvest.
func (h *Harvester) Harvest(ctx context.Context, req Request, progress ProgressFunc) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	logger := h.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	result := &Result{Run: uuid.NewString()}
	logger = logger.With("run", result.Run)
	delays := h.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	var known *bloom.KeySet
	if h.Prefilter && !h.Refresh {
		cached, err := h.Cache.Keys(ctx, req.Base)
		if err != nil {
			return nil, fmt.Errorf("list cached pages: %w", err)
		}
		known = bloom.NewKeySetFrom(cached)
		logger.Debug("loaded cached keys", "count", len(cached))
	}

	keys := req.Keys()
	progress(ProgressEvent{Type: ProgressStarted, Total: len(keys)})

	for i, key := range keys {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if !h.Refresh {
			cached, err := h.cached(ctx, known, key)
			if err != nil {
				return result, err
			}
			if cached {
				result.Skipped++
				logger.Debug("page already cached", "page", key.String())
				progress(ProgressEvent{Type: ProgressSkipped, Completed: i + 1, Total: len(keys), Key: key})
				continue
			}
		}

		if err := h.Throttle.Wait(ctx); err != nil {
			return result, err
		}

		html, err := FetchWithRetryDelays(ctx, key.URL(), h.Fetcher.Fetch, logger, delays)
		if err != nil {
			return result, fmt.Errorf("fetch %s: %w", key.URL(), err)
		}
		changed, err := h.Cache.Put(ctx, key, html)
		if err != nil {
			return result, fmt.Errorf("cache %s: %w", key, err)
		}

		result.Fetched++
		result.Bytes += len(html)
		event := ProgressEvent{Type: ProgressFetched, Completed: i + 1, Total: len(keys), Key: key}
		if !changed {
			result.Unchanged++
			event.Type = ProgressUnchanged
			logger.Info("page unchanged", "page", key.String())
		}
		progress(event)
	}

	logger.Info("harvest finished",
		"fetched", result.Fetched,
		"unchanged", result.Unchanged,
		"skipped", result.Skipped,
	)
	progress(ProgressEvent{Type: ProgressFinished, Completed: len(keys), Total: len(keys)})
	return result, nil
}

func (h *Harvester) cached(ctx context.Context, known *bloom.KeySet, key sbmb.PageKey) (bool, error) {
	if known != nil && !known.MayContain(key) {
		return false, nil
	}
	_, err := h.Cache.Get(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case sbmb.ErrorCode(err) == sbmb.ENOTFOUND:
		return false, nil
	default:
		return false, err
	}
}
