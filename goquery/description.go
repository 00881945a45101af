package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sbmb"
)

// ErrNoTitle is returned for description cells without any text.
var ErrNoTitle = sbmb.Errorf(sbmb.EINVALID, "no title")

// longDatePrefix matches "15 mars 2017. - ", "1er février 2017 - " and
// "2 août 2017, " at the start of a description.
var longDatePrefix = regexp.MustCompile(`(?is)^((?:1er|\d{1,2})\s+\p{L}+\s+\d{4})(?:\s*[.,]?\s*[-–—]+\s*|\s*[.,]\s+)(.*)$`)

// Description holds the fragments of a description cell.
type Description struct {
	DocDate sbmb.Date
	Title   string
	PubDate sbmb.Date
	Source  string
}

// SplitDescription splits the descriptive text into the enactment date
// text and the title. ok is false when no separator was found, in which
// case the whole text is the title.
func SplitDescription(s string) (dateText, title string, ok bool) {
	s = strings.TrimSpace(s)
	if m := longDatePrefix.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
	}
	if i := strings.Index(s, ". "); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+2:]), true
	}
	return "", s, false
}

// ParseDescription extracts the enactment date, title, publication date and
// source from a description cell. Missing or unparseable fragments are
// logged and left empty; only a cell without any descriptive text fails.
func (p *Parser) ParseDescription(cell *goquery.Selection, lang sbmb.Language) (Description, error) {
	var desc Description
	if cell == nil || cell.Length() == 0 {
		return desc, ErrNoTitle
	}

	titleRun := TitleTraversal.Walk(cell.Nodes[0])
	if titleRun == nil {
		return desc, ErrNoTitle
	}
	text := ownText(titleRun)
	if text == "" {
		return desc, ErrNoTitle
	}

	dateText, title, ok := SplitDescription(text)
	if !ok {
		p.logger.Warn("no separator in description", "text", text)
	}
	desc.Title = title

	if dateText != "" {
		if d, ok := p.dates.ParseLong(dateText, lang); ok {
			desc.DocDate = d
		} else {
			p.logger.Warn("unparseable date",
				"fragment", FragmentEnactmentDate.String(),
				"text", dateText,
				"lang", string(lang),
			)
		}
	}

	if pub, _, ok := Locate(titleRun, PublicationTraversal); ok {
		if d, ok := sbmb.ParseShortDate(pub); ok {
			desc.PubDate = d
		} else {
			p.logger.Warn("unparseable date",
				"fragment", FragmentPublicationDate.String(),
				"text", pub,
			)
		}
	} else {
		p.logger.Debug("no publication date", "title", title)
	}

	if src, used, ok := Locate(titleRun, SourceTraversal, SourceFotTraversal); ok {
		desc.Source = src
		if used.Name != SourceTraversal.Name {
			p.logger.Debug("source found with alternate traversal", "traversal", used.Name)
		}
	} else {
		p.logger.Debug("no source", "title", title)
	}

	return desc, nil
}
