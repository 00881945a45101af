package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sbmb"
)

// JustelLabel starts the label of links to the consolidated text.
const JustelLabel = "Justel"

// justelSegment marks the full text view in consolidated text URLs.
const justelSegment = "justel"

// Link cell errors.
var (
	ErrNoLinks  = sbmb.Errorf(sbmb.EINVALID, "no links")
	ErrNoJustel = sbmb.Errorf(sbmb.EINVALID, "no consolidated text link")
)

// Links holds the classified links of a row.
type Links struct {
	// ID is the canonical resource name derived from Justel.
	ID     string
	Justel string
	Scan   string
}

// ClassifyLinks splits the anchors of a link cell into the consolidated
// text link and the source scan link. When several anchors fall in the
// same class the last one wins.
func (p *Parser) ClassifyLinks(cell *goquery.Selection) (Links, error) {
	var links Links
	if cell == nil {
		return links, ErrNoLinks
	}
	anchors := cell.Find("a")
	if anchors.Length() == 0 {
		return links, ErrNoLinks
	}

	anchors.Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		label := strings.TrimSpace(a.Text())
		if strings.HasPrefix(label, JustelLabel) {
			if links.Justel != "" {
				p.logger.Warn("several consolidated text links", "kept", href, "dropped", links.Justel)
			}
			links.Justel = href
			return
		}
		links.Scan = href
	})

	if links.Justel == "" {
		return links, ErrNoJustel
	}
	links.ID = IdentifierFromJustel(links.Justel)
	if links.ID == "" {
		return links, ErrNoJustel
	}
	return links, nil
}

// IdentifierFromJustel removes the full text view segment from a
// consolidated text URL, yielding the ELI of the act.
//
//	http://www.ejustice.just.fgov.be/eli/loi/2017/03/15/2017011234/justel
//	→ http://www.ejustice.just.fgov.be/eli/loi/2017/03/15/2017011234
func IdentifierFromJustel(href string) string {
	u, err := url.Parse(href)
	if err != nil || u.Path == "" {
		return strings.Replace(href, "/"+justelSegment, "", 1)
	}
	segs := strings.Split(u.Path, "/")
	for i, s := range segs {
		if s == justelSegment {
			segs = append(segs[:i], segs[i+1:]...)
			break
		}
	}
	u.Path = strings.Join(segs, "/")
	u.RawPath = ""
	return u.String()
}
