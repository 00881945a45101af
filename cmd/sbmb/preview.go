package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/sbmb"
	"github.com/mattn/go-runewidth"
)

// previewTitleWidth caps the title column.
const previewTitleWidth = 60

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	lang := sbmb.Language(c.Lang)
	labels := deps.Config.Labels()
	label := labels.Label(lang)
	if label == "" {
		err := sbmb.Errorf(sbmb.EINVALID, "language %q not configured", c.Lang)
		fmt.Fprintf(deps.Stderr, "error: %s\n", sbmb.ErrorMessage(err))
		return err
	}

	key := sbmb.PageKey{Base: deps.Config.BaseURL(), Type: label, Year: c.Year}
	html, err := deps.Cache.Get(deps.Ctx, key)
	if err != nil {
		if sbmb.ErrorCode(err) == sbmb.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: page %s not cached. Run 'sbmb fetch -s %d' first.\n", key, c.Year)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", sbmb.ErrorMessage(err))
		return err
	}

	docs, err := deps.Parser.Parse(html, lang)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sbmb.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintf(deps.Stdout, "No documents on %s.\n", key)
		return nil
	}

	rows := [][]string{{"NUMAC", "DOCDATE", "PUBDATE", "TITLE"}}
	for _, d := range docs {
		rows = append(rows, []string{
			d.LocalID,
			d.DocDate.String(),
			d.PubDate.String(),
			runewidth.Truncate(d.Title, previewTitleWidth, "…"),
		})
	}
	for _, line := range formatTable(rows) {
		fmt.Fprintln(deps.Stdout, line)
	}
	fmt.Fprintf(deps.Stdout, "\n%d documents on %s\n", len(docs), key)
	return nil
}

// formatTable aligns the columns of rows by display width. The first row is
// the header and is followed by a separator line.
func formatTable(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	for r, row := range rows {
		var sb strings.Builder
		for i, w := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(runewidth.FillRight(cell, w))
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))

		if r == 0 {
			sep := make([]string, len(widths))
			for i, w := range widths {
				sep[i] = strings.Repeat("-", w)
			}
			lines = append(lines, strings.Join(sep, "  "))
		}
	}
	return lines
}
