// Package goquery implements the overview page parser on top of goquery.
package goquery

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sbmb"
)

// Ensure Parser implements sbmb.PageParser at compile time.
var _ sbmb.PageParser = (*Parser)(nil)

// Parser turns overview pages into documents.
type Parser struct {
	dates  *sbmb.DateParser
	logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for skipped rows and fields.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithDateParser sets the parser used for enactment dates.
func WithDateParser(dates *sbmb.DateParser) Option {
	return func(p *Parser) {
		p.dates = dates
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	if p.dates == nil {
		p.dates = sbmb.NewDateParser(p.logger)
	}
	return p
}

// Parse extracts the documents listed on an overview page, in page order.
func (p *Parser) Parse(html string, lang sbmb.Language) ([]sbmb.Document, error) {
	if lang == "" {
		return nil, sbmb.Errorf(sbmb.EINVALID, "page language required")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sbmb.Errorf(sbmb.EINVALID, "failed to parse HTML: %v", err)
	}
	return p.ParseDocument(doc, lang), nil
}

// ParseDocument extracts the documents from an already parsed page.
func (p *Parser) ParseDocument(doc *goquery.Document, lang sbmb.Language) []sbmb.Document {
	var docs []sbmb.Document
	for _, row := range p.ExtractRows(doc) {
		d, err := p.AssembleRow(row, lang)
		if err != nil {
			p.logger.Warn("dropping row", "row", row.Index, "reason", sbmb.ErrorMessage(err))
			continue
		}
		docs = append(docs, d)
	}
	return docs
}

// AssembleRow merges the description and links of a row into a document.
// It fails when the row has no consolidated text link or no text at all.
func (p *Parser) AssembleRow(row Row, lang sbmb.Language) (sbmb.Document, error) {
	links, err := p.ClassifyLinks(row.Links)
	if err != nil {
		return sbmb.Document{}, err
	}
	desc, err := p.ParseDescription(row.Description, lang)
	if err != nil {
		return sbmb.Document{}, err
	}

	doc := sbmb.Document{
		ID:      links.ID,
		LocalID: sbmb.LocalIDFromID(links.ID),
		Title:   desc.Title,
		Source:  desc.Source,
		Lang:    lang,
		DocDate: desc.DocDate,
		PubDate: desc.PubDate,
		Justel:  links.Justel,
		Scan:    links.Scan,
	}
	if err := doc.Validate(); err != nil {
		return sbmb.Document{}, err
	}
	return doc, nil
}
