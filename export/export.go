// Package export turns cached overview pages into output files.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/fwojciec/sbmb"
	"github.com/fwojciec/sbmb/fs"
	"golang.org/x/sync/errgroup"
)

// Exporter reads pages from the cache, parses them and writes one file per
// writer for every page.
type Exporter struct {
	Cache   sbmb.PageCache
	Parser  sbmb.PageParser
	Writers []sbmb.BatchWriter
	Dir     *fs.Dir
	Logger  *slog.Logger
}

// Request describes the pages to export.
type Request struct {
	Base string

	// DocType is the document type category shared by all languages.
	DocType string

	Labels sbmb.TypeLabels
	From   int
	To     int
}

// Validate returns an error if the request cannot be exported.
func (r Request) Validate() error {
	if r.Base == "" {
		return sbmb.Errorf(sbmb.EINVALID, "base URL required")
	}
	if r.DocType == "" {
		return sbmb.Errorf(sbmb.EINVALID, "document type required")
	}
	if err := r.Labels.Validate(); err != nil {
		return err
	}
	return sbmb.ValidateYears(r.From, r.To)
}

// Result holds the outcome of an export.
type Result struct {
	Pages     int
	Documents int
	Files     int
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// Export processes every page of the request, years ascending and languages
// in configuration order. A page missing from the cache aborts the export.
func (e *Exporter) Export(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := &Result{}
	for year := req.From; year <= req.To; year++ {
		for _, l := range req.Labels {
			key := sbmb.PageKey{Base: req.Base, Type: l.Label, Year: year}

			docs, err := e.Documents(ctx, key, l.Lang)
			if err != nil {
				return result, err
			}
			result.Pages++
			result.Documents += len(docs)

			n, err := e.WriteBatch(ctx, sbmb.Batch{
				DocType:   req.DocType,
				Type:      l.Label,
				Year:      year,
				Documents: docs,
			})
			result.Files += n
			if err != nil {
				return result, err
			}
		}
	}
	return result, nil
}

// Documents parses the cached page for key.
func (e *Exporter) Documents(ctx context.Context, key sbmb.PageKey, lang sbmb.Language) ([]sbmb.Document, error) {
	html, err := e.Cache.Get(ctx, key)
	if err != nil {
		if sbmb.ErrorCode(err) == sbmb.ENOTFOUND {
			return nil, sbmb.Errorf(sbmb.ENOTFOUND, "could not get %s from cache", key)
		}
		return nil, fmt.Errorf("read %s from cache: %w", key, err)
	}
	if html == "" {
		return nil, sbmb.Errorf(sbmb.ENOTFOUND, "could not get %s from cache", key)
	}

	docs, err := e.Parser.Parse(html, lang)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}
	e.logger().Info("parsed page", "page", key.String(), "documents", len(docs))
	return docs, nil
}

// WriteBatch writes the batch with every writer concurrently and returns
// the number of files created.
func (e *Exporter) WriteBatch(ctx context.Context, batch sbmb.Batch) (int, error) {
	var files atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range e.Writers {
		g.Go(func() error {
			name := fs.OutputName(batch.Type, batch.Year, w.Ext())
			ok, err := e.Dir.WriteFile(name, func(out io.Writer) (bool, error) {
				return w.WriteBatch(gctx, out, batch)
			})
			if err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}
			if ok {
				files.Add(1)
				e.logger().Info("wrote documents", "file", name, "count", len(batch.Documents))
			}
			return nil
		})
	}

	err := g.Wait()
	return int(files.Load()), err
}
