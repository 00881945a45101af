package goquery

import "github.com/PuerkitoBio/goquery"

// Row is one content row of an overview table.
type Row struct {
	// Index is the position of the tr element in the page.
	Index int

	Description *goquery.Selection
	Links       *goquery.Selection
}

// ExtractRows returns the content rows of the page in document order.
// Rows without a second cell separate the table sections and are skipped.
// Rows with a second but no third cell are malformed and skipped with a
// warning.
func (p *Parser) ExtractRows(doc *goquery.Document) []Row {
	var rows []Row
	doc.Find("tr").Each(func(i int, tr *goquery.Selection) {
		desc := tr.ChildrenFiltered("td:nth-child(2)").First()
		if desc.Length() == 0 {
			p.logger.Debug("skipping separator row", "row", i)
			return
		}
		links := tr.ChildrenFiltered("td:nth-child(3)").First()
		if links.Length() == 0 {
			p.logger.Warn("skipping malformed row", "row", i, "reason", "no link cell")
			return
		}
		rows = append(rows, Row{Index: i, Description: desc, Links: links})
	})
	return rows
}
