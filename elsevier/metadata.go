package elsevier

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/tsawler/elsxml/markup"
	"github.com/tsawler/elsxml/model"
)

// metadata maps the xocs:meta block to a MetaData element. Each field is
// looked up on its own; the first match in document order wins and a field
// without a match stays nil.
func (a *article) metadata(n *xmlquery.Node) *model.MetaData {
	s := a.sel
	m := &model.MetaData{
		Title:     firstText(s.metaTitle, n),
		Authors:   allText(s.metaAuthor, n),
		Publisher: firstText(s.metaPublisher, n),
		Journal:   firstText(s.metaJournal, n),
		Date:      firstText(s.metaDate, n),
		Language:  languageOf(s.metaLanguage.First(n)),
		Volume:    firstText(s.metaVolume, n),
		Issue:     firstText(s.metaIssue, n),
		FirstPage: firstText(s.metaFirstPage, n),
		LastPage:  firstText(s.metaLastPage, n),
		DOI:       firstText(s.metaDOI, n),
	}

	if frag := firstText(s.metaPDFURL, n); frag != nil {
		m.PDFURL = model.StringPtr(a.r.urlPrefix + *frag)
	}
	if frag := firstText(s.metaHTMLURL, n); frag != nil {
		m.HTMLURL = model.StringPtr(a.r.urlPrefix + *frag)
	} else if pii := firstText(s.metaPII, n); pii != nil {
		m.HTMLURL = model.StringPtr(a.r.urlPrefix + *pii)
	}
	return m
}

func nodeText(n *xmlquery.Node) *string {
	if n == nil {
		return nil
	}
	text := markup.NormalizeText(n.InnerText())
	if text == "" {
		return nil
	}
	return &text
}

func firstText(s *markup.Selector, n *xmlquery.Node) *string {
	return nodeText(s.First(n))
}

func allText(s *markup.Selector, n *xmlquery.Node) []string {
	var out []string
	for _, m := range s.Select(n) {
		if t := nodeText(m); t != nil {
			out = append(out, *t)
		}
	}
	return out
}

// language reads xocs:language, which carries the code either as text or in
// its lang-code attribute.
func languageOf(n *xmlquery.Node) *string {
	if n == nil {
		return nil
	}
	if t := nodeText(n); t != nil {
		return canonicalLanguage(*t)
	}
	if code := markup.Attr(n, "lang-code"); code != "" {
		return canonicalLanguage(code)
	}
	return nil
}

// canonicalLanguage rewrites a language code or English language name as a
// BCP 47 tag. Values that are neither are kept as they are.
func canonicalLanguage(s string) *string {
	if tag, err := language.Parse(s); err == nil {
		return model.StringPtr(tag.String())
	}
	for _, tag := range display.Supported.Tags() {
		if strings.EqualFold(display.English.Languages().Name(tag), s) {
			base, _ := tag.Base()
			return model.StringPtr(base.String())
		}
	}
	return &s
}
