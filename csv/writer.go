// Package csv writes document batches as comma-separated tables.
package csv

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/fwojciec/sbmb"
)

// Header is the first row of every table.
var Header = []string{"ID", "JUSTEL", "DOCTYPE", "NUMAC", "DOCDATE", "PUBDATE", "LANG", "TYPE", "SOURCE", "TITLE"}

// Ensure Writer implements sbmb.BatchWriter.
var _ sbmb.BatchWriter = (*Writer)(nil)

// Writer writes one row per document.
type Writer struct {
	labels sbmb.TypeLabels
}

// NewWriter creates a Writer. The labels provide the TYPE column.
func NewWriter(labels sbmb.TypeLabels) *Writer {
	return &Writer{labels: labels}
}

// Ext implements sbmb.BatchWriter.
func (w *Writer) Ext() string { return ".csv" }

// WriteBatch writes the header followed by the documents in batch order.
// The header is written even when the batch is empty.
func (w *Writer) WriteBatch(ctx context.Context, out io.Writer, batch sbmb.Batch) (bool, error) {
	cw := csv.NewWriter(out)
	if err := cw.Write(Header); err != nil {
		return false, err
	}

	for _, doc := range batch.Documents {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if err := cw.Write(w.record(batch, doc)); err != nil {
			return false, err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return false, err
	}
	return true, nil
}

func (w *Writer) record(batch sbmb.Batch, doc sbmb.Document) []string {
	typ := w.labels.Label(doc.Lang)
	if typ == "" {
		typ = batch.Type
	}
	return []string{
		doc.ID,
		doc.Justel,
		batch.DocType,
		doc.LocalID,
		doc.DocDate.String(),
		doc.PubDate.String(),
		string(doc.Lang),
		typ,
		doc.Source,
		doc.Title,
	}
}
