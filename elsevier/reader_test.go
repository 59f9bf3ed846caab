package elsevier

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/elsxml/model"
)

func loadArticle(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "article.xml"))
	require.NoError(t, err)
	return data
}

func parseArticle(t *testing.T, opts ...Option) *model.Document {
	t.Helper()
	r, err := New(opts...)
	require.NoError(t, err)
	doc, err := r.Parse(loadArticle(t))
	require.NoError(t, err)
	return doc
}

func types(doc *model.Document) []string {
	out := make([]string, 0, doc.Len())
	for _, el := range doc.Elements {
		out = append(out, el.Type().String())
	}
	return out
}

func TestParseArticleStructure(t *testing.T) {
	doc := parseArticle(t)

	want := []string{
		"Title", "MetaData", "Figure", "Table", "Heading", "Paragraph",
		"Heading", "Paragraph", "Heading", "Citation",
	}
	if diff := cmp.Diff(want, types(doc)); diff != "" {
		t.Fatalf("element types mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "Palladium-catalysed coupling of aryl halides", doc.Titles()[0].Text)

	var headings []string
	for _, h := range doc.Headings() {
		headings = append(headings, h.Text+"#"+h.ID)
	}
	assert.Equal(t, []string{"Abstract#st0005", "Introduction#st0010", "References#st0015"}, headings)
}

func TestParseArticleParagraphs(t *testing.T) {
	doc := parseArticle(t)
	paras := doc.Paragraphs()
	require.Len(t, paras, 2)

	assert.Equal(t, model.Content{Text: "We report a coupling.", ID: "sp0005"}, paras[0].Content)
	// the cross-reference is killed, the hsp marker becomes a space and
	// the subscript is merged into the formula
	assert.Equal(t, "Aryl halides are useful . The product H2O was removed.", paras[1].Text)
	assert.Equal(t, "p0005", paras[1].ID)
	assert.Empty(t, paras[1].References)
}

func TestParseArticleTable(t *testing.T) {
	doc := parseArticle(t)
	tables := doc.Tables()
	require.Len(t, tables, 1)
	table := tables[0]

	assert.Equal(t, "t0005", table.ID)
	assert.Equal(t, "Optimisation of conditions", table.Caption.Text)
	assert.Equal(t, "cap0015", table.Caption.ID)
	assert.Equal(t, 1, table.HeaderRows)

	var got [][]string
	for _, row := range table.Rows {
		var texts []string
		for _, c := range row {
			texts = append(texts, c.Text)
		}
		got = append(got, texts)
	}
	want := [][]string{
		{"Entry", "Yield (%)", "Yield (%)"},
		{"1", "85", "80"},
		{"1", "70", "65"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("table grid mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, table.Rows[0][1].ColSpan)
	assert.Equal(t, 2, table.Rows[1][0].RowSpan)

	require.Len(t, table.Footnotes, 1)
	assert.Equal(t, "a Isolated yield.", table.Footnotes[0].Text)
	assert.Equal(t, "tf0005", table.Footnotes[0].ID)
}

func TestParseArticleFigure(t *testing.T) {
	doc := parseArticle(t)
	figs := doc.Figures()
	require.Len(t, figs, 1)

	assert.Equal(t, "gr1", figs[0].ID)
	assert.Equal(t, "Scope of the ortho coupling.", figs[0].Caption.Text)
	assert.Equal(t, "https://ars.els-cdn.com/content/image/1-s2.0-S0040403916300016-gr1_lrg.jpg", figs[0].URL)
}

func TestParseArticleMetadata(t *testing.T) {
	doc := parseArticle(t)
	meta := doc.Metadata()
	require.NotNil(t, meta)

	s := model.StringPtr
	want := &model.MetaData{
		Title:     s("PALLADIUMCATALYSEDCOUPLINGOFARYLHALIDES"),
		Authors:   []string{"SMITH"},
		Publisher: s("© 2016 Elsevier Ltd. All rights reserved."),
		Journal:   s("Tetrahedron Letters"),
		Date:      s("2016-01-05"),
		Language:  s("en"),
		Volume:    s("57"),
		Issue:     s("0040-4039"),
		FirstPage: s("100"),
		LastPage:  s("104"),
		DOI:       s("10.1016/j.tetlet.2016.01.001"),
		HTMLURL:   s("https://sciencedirect.com/science/article/pii/S0040403916300016"),
	}
	if diff := cmp.Diff(want, meta); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArticleCitation(t *testing.T) {
	doc := parseArticle(t)
	cites := doc.Citations()
	require.Len(t, cites, 1)
	assert.Equal(t, "[1] J. Smith, Tetrahedron Lett. 57 (2016) 100.", cites[0].Text)
	assert.Equal(t, "bib1", cites[0].ID)
}

func TestParseWithURLOptions(t *testing.T) {
	sel := DefaultSelectors()
	sel.MetadataPDFURL = ".//xocs:pii-unformatted"

	doc := parseArticle(t,
		WithSelectors(sel),
		WithURLPrefix("https://example.org/pii/"),
		WithImageURLPrefix("https://img.example.org/"),
	)

	meta := doc.Metadata()
	require.NotNil(t, meta)
	require.NotNil(t, meta.PDFURL)
	assert.Equal(t, "https://example.org/pii/S0040403916300016", *meta.PDFURL)
	assert.Equal(t, "https://example.org/pii/S0040403916300016", *meta.HTMLURL)
	assert.Equal(t, "https://img.example.org/S0040403916300016-gr1_lrg.jpg", doc.Figures()[0].URL)
}

func TestParseKeepsReferences(t *testing.T) {
	sel := DefaultSelectors()
	sel.Kill = []string{".//ce:table//ce:sup"}
	var ignore []string
	for _, s := range sel.Ignore {
		if !strings.Contains(s, "cross-ref") {
			ignore = append(ignore, s)
		}
	}
	sel.Ignore = ignore

	doc := parseArticle(t, WithSelectors(sel))
	paras := doc.Paragraphs()
	require.Len(t, paras, 2)
	assert.Equal(t, "Aryl halides are useful [1]. The product H2O was removed.", paras[1].Text)
	assert.Equal(t, []string{"bib1"}, paras[1].References)
}

const minimal = `<?xml version="1.0" encoding="UTF-8"?>
<full-text-retrieval-response xmlns="http://www.elsevier.com/xml/svapi/article/dtd" xmlns:ce="http://www.elsevier.com/xml/common/dtd" xmlns:cals="http://www.elsevier.com/xml/common/cals/dtd" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:xocs="http://www.elsevier.com/xml/xocs/dtd">
  <coredata><dc:title>Minimal article</dc:title></coredata>
  <xocs:meta><xocs:normalized-article-title>MINIMALARTICLE</xocs:normalized-article-title></xocs:meta>
  <ce:table id="t1">
    <cals:tgroup cols="2">
      <cals:tbody>
        <cals:row><ce:entry morerows="1">A</ce:entry><ce:entry>B</ce:entry></cals:row>
        <cals:row><ce:entry>C</ce:entry></cals:row>
      </cals:tbody>
    </cals:tgroup>
  </ce:table>
</full-text-retrieval-response>`

func TestParseMinimalDocument(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	doc, err := r.Parse([]byte(minimal))
	require.NoError(t, err)

	require.Equal(t, []string{"Title", "MetaData", "Table"}, types(doc))

	table := doc.Tables()[0]
	assert.LessOrEqual(t, table.RowCount(), 3)
	for _, row := range table.Rows {
		assert.Len(t, row, table.ColCount())
	}
	assert.Equal(t, "A", table.Rows[1][0].Text)
	assert.Equal(t, "C", table.Rows[1][1].Text)

	want := &model.MetaData{Title: model.StringPtr("MINIMALARTICLE")}
	if diff := cmp.Diff(want, doc.Metadata()); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSpaceBetweenInlineElements(t *testing.T) {
	data := strings.Replace(minimal, `<ce:table id="t1">`,
		`<ce:para id="p1"><ce:small-caps>a</ce:small-caps><ce:hsp/><ce:small-caps>b</ce:small-caps></ce:para><ce:table id="t1">`, 1)
	r, err := New()
	require.NoError(t, err)
	doc, err := r.Parse([]byte(data))
	require.NoError(t, err)

	paras := doc.Paragraphs()
	require.Len(t, paras, 1)
	assert.Equal(t, "a b", paras[0].Text)
}

func TestParseErrors(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	tests := []struct {
		name string
		data string
	}{
		{"malformed", `<full-text-retrieval-response xmlns="http://www.elsevier.com/xml/svapi/article/dtd"><coredata>`},
		{"empty", ``},
		{"missing root", `<other xmlns="http://www.elsevier.com/xml/svapi/article/dtd"><p>x</p></other>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := r.Parse([]byte(tt.data))
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, ErrReader), "got %v", err)
		})
	}
}

func TestNewRejectsBadSelectors(t *testing.T) {
	sel := DefaultSelectors()
	sel.Title = ".//zz:title"
	_, err := New(WithSelectors(sel))
	assert.Error(t, err)

	sel = DefaultSelectors()
	sel.Root = ""
	_, err = New(WithSelectors(sel))
	assert.Error(t, err)

	sel = DefaultSelectors()
	sel.Inline = []string{"zz:italic"}
	_, err = New(WithSelectors(sel))
	assert.Error(t, err)
}

func TestReaderIsReusable(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	data := loadArticle(t)

	first, err := r.Parse(data)
	require.NoError(t, err)
	second, err := r.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, types(first), types(second))
}

func TestCanonicalLanguage(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"en-us", "en-US"},
		{"English", "en"},
		{"french", "fr"},
		{"not a language", "not a language"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := canonicalLanguage(tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}
