package sbmb

import (
	"context"
	"io"
	"path"
	"strings"
)

// Language is the language of an overview page.
type Language string

// Supported page languages.
const (
	Dutch  Language = "nl"
	French Language = "fr"
)

// Document represents one legal act as listed on one overview page.
//
// Documents are values: once assembled they are never modified in place.
// The With methods return a corrected copy.
type Document struct {
	// ID is the canonical resource name (ELI), derived from the Justel link.
	ID string

	// LocalID is the NUMAC reference number, if any.
	LocalID string

	Title  string
	Source string

	// Lang is assigned from the page being parsed, never from its content.
	Lang Language

	DocDate Date
	PubDate Date

	// Justel is the link to the consolidated text.
	Justel string

	// Scan is the link to the original publication in the journal.
	Scan string
}

// Validate returns an error if the document contains invalid fields.
func (d Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if d.Justel == "" {
		return Errorf(EINVALID, "document consolidated text link required")
	}
	if d.Lang == "" {
		return Errorf(EINVALID, "document language required")
	}
	return nil
}

// WithTitle returns a copy of the document with the given title.
func (d Document) WithTitle(title string) Document {
	d.Title = title
	return d
}

// WithSource returns a copy of the document with the given source.
func (d Document) WithSource(source string) Document {
	d.Source = source
	return d
}

// WithDates returns a copy of the document with the given dates.
func (d Document) WithDates(docDate, pubDate Date) Document {
	d.DocDate = docDate
	d.PubDate = pubDate
	return d
}

// LocalIDFromID returns the NUMAC number embedded as the last path segment
// of an ELI identifier, or an empty string when that segment is not numeric.
func LocalIDFromID(id string) string {
	seg := path.Base(strings.TrimSuffix(id, "/"))
	if seg == "" || seg == "." || seg == "/" {
		return ""
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return seg
}

// Batch holds the documents of one (document type, year) group.
type Batch struct {
	// DocType is the common document type category (e.g. "law").
	DocType string

	// Type is the language-specific type label the page was listed under.
	Type string

	Year      int
	Documents []Document
}

// PageParser turns the HTML of one overview page into documents.
type PageParser interface {
	// Parse extracts the documents listed on the page, in page order.
	// Rows that cannot yield an identifier or title are dropped.
	// A page without any documents is not an error.
	Parse(html string, lang Language) ([]Document, error)
}

// BatchWriter serialises a batch of documents.
type BatchWriter interface {
	// Ext returns the file extension of the output, including the dot.
	Ext() string

	// WriteBatch writes the batch to w. It reports false when there was
	// nothing to write and no output should be kept.
	WriteBatch(ctx context.Context, w io.Writer, batch Batch) (bool, error)
}
