package mock

import "github.com/fwojciec/sbmb"

var _ sbmb.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of sbmb.PageParser.
type PageParser struct {
	ParseFn func(html string, lang sbmb.Language) ([]sbmb.Document, error)
}

func (p *PageParser) Parse(html string, lang sbmb.Language) ([]sbmb.Document, error) {
	return p.ParseFn(html, lang)
}
