package csv_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/sbmb"
	sbmbcsv "github.com/fwojciec/sbmb/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels() sbmb.TypeLabels {
	return sbmb.TypeLabels{
		{Lang: sbmb.Dutch, Label: "wet"},
		{Lang: sbmb.French, Label: "loi"},
	}
}

func TestWriter_WriteBatch(t *testing.T) {
	t.Parallel()

	t.Run("writes the header and one row per document", func(t *testing.T) {
		t.Parallel()

		docs := []sbmb.Document{
			{
				ID:      "http://example.com/eli/loi/2017/03/15/2017011234",
				LocalID: "2017011234",
				Justel:  "http://example.com/eli/loi/2017/03/15/2017011234/justel",
				Title:   "Arrêté royal, relatif à \"la\" sécurité",
				Source:  "Service public fédéral Intérieur",
				Lang:    sbmb.French,
				DocDate: sbmb.Date{Year: 2017, Month: time.March, Day: 15},
				PubDate: sbmb.Date{Year: 2017, Month: time.March, Day: 21},
			},
			{
				ID:     "http://example.com/eli/wet/2017/03/15/2",
				Justel: "http://example.com/eli/wet/2017/03/15/2/justel",
				Title:  "Wet",
				Lang:   sbmb.Dutch,
			},
		}
		var buf bytes.Buffer

		ok, err := sbmbcsv.NewWriter(labels()).WriteBatch(context.Background(), &buf, sbmb.Batch{
			DocType:   "law",
			Type:      "loi",
			Year:      2017,
			Documents: docs,
		})

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "ID,JUSTEL,DOCTYPE,NUMAC,DOCDATE,PUBDATE,LANG,TYPE,SOURCE,TITLE\n"+
			"http://example.com/eli/loi/2017/03/15/2017011234,http://example.com/eli/loi/2017/03/15/2017011234/justel,law,2017011234,2017-03-15,2017-03-21,fr,loi,Service public fédéral Intérieur,\"Arrêté royal, relatif à \"\"la\"\" sécurité\"\n"+
			"http://example.com/eli/wet/2017/03/15/2,http://example.com/eli/wet/2017/03/15/2/justel,law,,,,nl,wet,,Wet\n",
			buf.String())
	})

	t.Run("writes only the header for an empty batch", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		ok, err := sbmbcsv.NewWriter(labels()).WriteBatch(context.Background(), &buf, sbmb.Batch{DocType: "law", Year: 2017})

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "ID,JUSTEL,DOCTYPE,NUMAC,DOCDATE,PUBDATE,LANG,TYPE,SOURCE,TITLE\n", buf.String())
	})

	t.Run("falls back to the page type label", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		_, err := sbmbcsv.NewWriter(nil).WriteBatch(context.Background(), &buf, sbmb.Batch{
			DocType:   "law",
			Type:      "decreet",
			Documents: []sbmb.Document{{ID: "x", Justel: "y", Lang: sbmb.Dutch}},
		})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "x,y,law,,,,nl,decreet,,\n")
	})
}

func TestWriter_Ext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".csv", sbmbcsv.NewWriter(nil).Ext())
}
