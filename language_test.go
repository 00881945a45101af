package sbmb_test

import (
	"testing"

	"github.com/fwojciec/sbmb"
	"github.com/stretchr/testify/assert"
)

func testLabels() sbmb.TypeLabels {
	return sbmb.TypeLabels{
		{Lang: sbmb.Dutch, Label: "wet"},
		{Lang: sbmb.French, Label: "loi"},
	}
}

func TestTypeLabels_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, testLabels().Validate())
	assert.Equal(t, sbmb.EINVALID, sbmb.ErrorCode(sbmb.TypeLabels{}.Validate()))
	assert.Equal(t, sbmb.EINVALID, sbmb.ErrorCode(sbmb.TypeLabels{{Lang: sbmb.Dutch}}.Validate()))
	assert.Equal(t, sbmb.EINVALID, sbmb.ErrorCode(sbmb.TypeLabels{
		{Lang: sbmb.Dutch, Label: "wet"},
		{Lang: sbmb.Dutch, Label: "decreet"},
	}.Validate()))
}

func TestTypeLabels_Others(t *testing.T) {
	t.Parallel()

	others := testLabels().Others(sbmb.Dutch)

	assert.Equal(t, sbmb.TypeLabels{{Lang: sbmb.French, Label: "loi"}}, others)
	assert.Equal(t, "wet", testLabels().Label(sbmb.Dutch))
	assert.Empty(t, testLabels().Label("de"))
}

func TestTypeLabels_LanguageIRI(t *testing.T) {
	t.Parallel()

	labels := sbmb.TypeLabels{{Lang: sbmb.Dutch, Label: "wet", IRI: "http://example.com/nl"}}

	assert.Equal(t, "http://example.com/nl", labels.LanguageIRI(sbmb.Dutch))
	assert.Equal(t, sbmb.LanguageAuthority+"FRA", labels.LanguageIRI(sbmb.French))
}

func TestSibling(t *testing.T) {
	t.Parallel()

	got, ok := sbmb.Sibling("http://example.com/eli/wet/2017/03/15/2017011234", "wet", "loi")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/eli/loi/2017/03/15/2017011234", got)

	_, ok = sbmb.Sibling("http://example.com/eli/decreet/2017/03/15/1", "wet", "loi")
	assert.False(t, ok)
}

func TestPageKey_URL(t *testing.T) {
	t.Parallel()

	key := sbmb.PageKey{Base: "http://example.com/eli/", Type: "wet", Year: 2017}

	assert.Equal(t, "http://example.com/eli/wet/2017", key.URL())
	assert.Equal(t, "wet/2017", key.String())
}

func TestNormalizeBase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "http://example.com/eli", sbmb.NormalizeBase("example.com/eli/"))
	assert.Equal(t, "https://example.com/eli", sbmb.NormalizeBase("https://example.com/eli"))
}

func TestValidateYears(t *testing.T) {
	t.Parallel()

	assert.NoError(t, sbmb.ValidateYears(1800, 1800))
	assert.NoError(t, sbmb.ValidateYears(2000, 2017))
	assert.Equal(t, sbmb.EINVALID, sbmb.ErrorCode(sbmb.ValidateYears(1799, 2017)))
	assert.Equal(t, sbmb.EINVALID, sbmb.ErrorCode(sbmb.ValidateYears(2018, 2017)))
}
