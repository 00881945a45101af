package export_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/sbmb"
	sbmbcsv "github.com/fwojciec/sbmb/csv"
	"github.com/fwojciec/sbmb/export"
	"github.com/fwojciec/sbmb/fs"
	"github.com/fwojciec/sbmb/goquery"
	"github.com/fwojciec/sbmb/mock"
	"github.com/fwojciec/sbmb/ntriples"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "http://www.ejustice.just.fgov.be/eli"

const dutchPage = `<html><body><table>
<tr><td colspan="3">Maart 2017</td></tr>
<tr>
	<td>1</td>
	<td><font>15 maart 2017. - Wet betreffende de veiligheid
		<font><b>Publicatie : <font>21-03-2017</font></b></font>
	</font></td>
	<td><a href="` + base + `/wet/2017/03/15/2017011234/justel">Justel</a></td>
</tr>
</table></body></html>`

const frenchPage = `<html><body><table>
<tr>
	<td>1</td>
	<td><font>15 mars 2017. - Loi relative à la sécurité</font></td>
	<td><a href="` + base + `/loi/2017/03/15/2017011234/justel">Justel</a></td>
</tr>
</table></body></html>`

func labels() sbmb.TypeLabels {
	return sbmb.TypeLabels{
		{Lang: sbmb.Dutch, Label: "wet"},
		{Lang: sbmb.French, Label: "loi"},
	}
}

func cache(pages map[sbmb.PageKey]string) *mock.PageCache {
	return &mock.PageCache{
		GetFn: func(_ context.Context, key sbmb.PageKey) (string, error) {
			html, ok := pages[key]
			if !ok {
				return "", sbmb.Errorf(sbmb.ENOTFOUND, "page not cached")
			}
			return html, nil
		},
	}
}

func newExporter(dir string, pages map[sbmb.PageKey]string) *export.Exporter {
	loc := time.FixedZone("CET", 3600)
	return &export.Exporter{
		Cache:  cache(pages),
		Parser: goquery.NewParser(),
		Writers: []sbmb.BatchWriter{
			ntriples.NewWriter(labels(), ntriples.WithLocation(loc)),
			sbmbcsv.NewWriter(labels()),
		},
		Dir: fs.NewDir(dir),
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	req := export.Request{Base: base, DocType: "law", Labels: labels(), From: 2017, To: 2017}

	t.Run("writes both outputs for every language", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		e := newExporter(dir, map[sbmb.PageKey]string{
			{Base: base, Type: "wet", Year: 2017}: dutchPage,
			{Base: base, Type: "loi", Year: 2017}: frenchPage,
		})

		result, err := e.Export(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, &export.Result{Pages: 2, Documents: 2, Files: 4}, result)

		nt := readFile(t, filepath.Join(dir, "wet-2017.nt"))
		assert.Contains(t, nt, "<"+base+"/wet/2017/03/15/2017011234> <"+ntriples.PropSameAs+"> <"+base+"/loi/2017/03/15/2017011234> .")
		assert.Contains(t, nt, "\"2017-03-21T00:00:00+01:00\"^^<"+ntriples.DatatypeDateTime+">")

		csv := readFile(t, filepath.Join(dir, "loi-2017.csv"))
		assert.Equal(t, "ID,JUSTEL,DOCTYPE,NUMAC,DOCDATE,PUBDATE,LANG,TYPE,SOURCE,TITLE\n"+
			base+"/loi/2017/03/15/2017011234,"+base+"/loi/2017/03/15/2017011234/justel,law,2017011234,2017-03-15,,fr,loi,,Loi relative à la sécurité\n", csv)

		assert.FileExists(t, filepath.Join(dir, "wet-2017.csv"))
		assert.FileExists(t, filepath.Join(dir, "loi-2017.nt"))
	})

	t.Run("writes only the table for a page without documents", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		empty := "<html><body><table></table></body></html>"
		e := newExporter(dir, map[sbmb.PageKey]string{
			{Base: base, Type: "wet", Year: 2017}: empty,
			{Base: base, Type: "loi", Year: 2017}: empty,
		})

		result, err := e.Export(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Files)
		assert.NoFileExists(t, filepath.Join(dir, "wet-2017.nt"))
		assert.Equal(t, "ID,JUSTEL,DOCTYPE,NUMAC,DOCDATE,PUBDATE,LANG,TYPE,SOURCE,TITLE\n", readFile(t, filepath.Join(dir, "wet-2017.csv")))
	})

	t.Run("aborts when a page is missing from the cache", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		e := newExporter(dir, map[sbmb.PageKey]string{
			{Base: base, Type: "wet", Year: 2017}: dutchPage,
		})

		result, err := e.Export(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, sbmb.ENOTFOUND, sbmb.ErrorCode(err))
		assert.Contains(t, sbmb.ErrorMessage(err), "loi/2017")
		assert.Equal(t, 1, result.Pages)
		assert.NoFileExists(t, filepath.Join(dir, "loi-2017.csv"))
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		pages := map[sbmb.PageKey]string{
			{Base: base, Type: "wet", Year: 2017}: dutchPage,
			{Base: base, Type: "loi", Year: 2017}: frenchPage,
		}
		first, second := t.TempDir(), t.TempDir()

		_, err := newExporter(first, pages).Export(context.Background(), req)
		require.NoError(t, err)
		_, err = newExporter(second, pages).Export(context.Background(), req)
		require.NoError(t, err)

		for _, name := range []string{"wet-2017.nt", "wet-2017.csv", "loi-2017.nt", "loi-2017.csv"} {
			assert.Equal(t, readFile(t, filepath.Join(first, name)), readFile(t, filepath.Join(second, name)), name)
		}
	})

	t.Run("rejects invalid requests", func(t *testing.T) {
		t.Parallel()

		e := newExporter(t.TempDir(), nil)

		_, err := e.Export(context.Background(), export.Request{Base: base, DocType: "law", Labels: labels(), From: 1700, To: 2017})
		assert.Equal(t, sbmb.EINVALID, sbmb.ErrorCode(err))

		_, err = e.Export(context.Background(), export.Request{Base: base, Labels: labels(), From: 2017, To: 2017})
		assert.Equal(t, sbmb.EINVALID, sbmb.ErrorCode(err))
	})
}

func TestExporter_WriteBatch(t *testing.T) {
	t.Parallel()

	t.Run("returns the first writer error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeErr := errors.New("no space left")
		e := &export.Exporter{
			Dir: fs.NewDir(dir),
			Writers: []sbmb.BatchWriter{
				&mock.BatchWriter{
					ExtFn: func() string { return ".nt" },
					WriteBatchFn: func(context.Context, io.Writer, sbmb.Batch) (bool, error) {
						return false, writeErr
					},
				},
				&mock.BatchWriter{
					ExtFn: func() string { return ".csv" },
					WriteBatchFn: func(_ context.Context, w io.Writer, _ sbmb.Batch) (bool, error) {
						_, err := io.WriteString(w, "ok")
						return true, err
					},
				},
			},
		}

		_, err := e.WriteBatch(context.Background(), sbmb.Batch{Type: "wet", Year: 2017})

		require.ErrorIs(t, err, writeErr)
		assert.True(t, strings.Contains(err.Error(), "wet-2017.nt"))
		assert.NoFileExists(t, filepath.Join(dir, "wet-2017.nt"))
	})
}
