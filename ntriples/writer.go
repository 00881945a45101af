package ntriples

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/sbmb"
)

// Ensure Writer implements sbmb.BatchWriter.
var _ sbmb.BatchWriter = (*Writer)(nil)

// Writer projects batches of documents onto the ELI ontology.
type Writer struct {
	labels   sbmb.TypeLabels
	location *time.Location
	logger   *slog.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithLocation sets the time zone in which date literals are anchored at
// midnight. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(w *Writer) {
		w.location = loc
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter creates a Writer for the given languages. Their type labels are
// used to derive the identifiers of the same act in the other languages.
func NewWriter(labels sbmb.TypeLabels, opts ...Option) *Writer {
	w := &Writer{
		labels:   labels,
		location: time.Local,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.New(slog.DiscardHandler)
	}
	if w.location == nil {
		w.location = time.Local
	}
	return w
}

// Ext implements sbmb.BatchWriter.
func (w *Writer) Ext() string { return ".nt" }

// WriteBatch writes the statements for every document of the batch.
// An empty batch writes nothing and reports false.
func (w *Writer) WriteBatch(ctx context.Context, out io.Writer, batch sbmb.Batch) (bool, error) {
	if len(batch.Documents) == 0 {
		w.logger.Warn("nothing to write", "doctype", batch.DocType, "year", batch.Year)
		return false, nil
	}

	g := NewGraph()
	for _, doc := range batch.Documents {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		w.add(g, batch, doc)
	}

	if _, err := g.WriteTo(out); err != nil {
		return false, err
	}
	return true, nil
}

func (w *Writer) add(g *Graph, batch sbmb.Batch, doc sbmb.Document) {
	lang := string(doc.Lang)
	work := IRI(doc.ID)
	expr := IRI(doc.Justel)
	format := IRI(doc.Justel + FormatSuffix)

	g.Add(work, IRI(PropType), IRI(ClassLegalResource))
	g.Add(work, IRI(PropTypeDocument), docTypeTerm(batch.DocType))
	w.addSiblings(g, work, doc, batch.Type)
	if doc.LocalID != "" {
		g.Add(work, IRI(PropIDLocal), Literal(doc.LocalID))
	}
	g.Add(work, IRI(PropIsRealizedBy), expr)
	if doc.Source != "" {
		g.Add(work, IRI(PropResponsibilityOf), LangLiteral(doc.Source, lang))
	}

	g.Add(expr, IRI(PropType), IRI(ClassLegalExpression))
	g.Add(expr, IRI(PropRealizes), work)
	g.Add(expr, IRI(PropLanguage), IRI(w.labels.LanguageIRI(doc.Lang)))
	g.Add(expr, IRI(PropTitle), LangLiteral(doc.Title, lang))
	if !doc.DocDate.IsZero() {
		g.Add(expr, IRI(PropDateDocument), w.dateTerm(doc.DocDate))
	}
	if !doc.PubDate.IsZero() {
		g.Add(expr, IRI(PropDatePublication), w.dateTerm(doc.PubDate))
	}
	g.Add(expr, IRI(PropPublisher), IRI(Publisher))
	g.Add(expr, IRI(PropIsEmbodiedBy), format)

	g.Add(format, IRI(PropType), IRI(ClassFormat))
	g.Add(format, IRI(PropEmbodies), expr)
	g.Add(format, IRI(PropFormat), IRI(MediaTypeHTML))
}

// addSiblings links the act to its counterpart in every other configured
// language.
func (w *Writer) addSiblings(g *Graph, work Term, doc sbmb.Document, pageType string) {
	from := w.labels.Label(doc.Lang)
	if from == "" {
		from = pageType
	}
	for _, other := range w.labels.Others(doc.Lang) {
		sibling, ok := sbmb.Sibling(doc.ID, from, other.Label)
		if !ok {
			w.logger.Warn("no type label in identifier", "id", doc.ID, "label", from)
			return
		}
		g.Add(work, IRI(PropSameAs), IRI(sibling))
	}
}

func (w *Writer) dateTerm(d sbmb.Date) Term {
	return TypedLiteral(d.Midnight(w.location).Format(time.RFC3339), DatatypeDateTime)
}

func docTypeTerm(docType string) Term {
	if strings.HasPrefix(docType, "http://") || strings.HasPrefix(docType, "https://") {
		return IRI(docType)
	}
	return Literal(docType)
}
