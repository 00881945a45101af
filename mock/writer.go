package mock

import (
	"context"
	"io"

	"github.com/fwojciec/sbmb"
)

var _ sbmb.BatchWriter = (*BatchWriter)(nil)

// BatchWriter is a mock implementation of sbmb.BatchWriter.
type BatchWriter struct {
	ExtFn        func() string
	WriteBatchFn func(ctx context.Context, w io.Writer, batch sbmb.Batch) (bool, error)
}

func (b *BatchWriter) Ext() string {
	return b.ExtFn()
}

func (b *BatchWriter) WriteBatch(ctx context.Context, w io.Writer, batch sbmb.Batch) (bool, error) {
	return b.WriteBatchFn(ctx, w, batch)
}
