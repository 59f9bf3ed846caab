package elsevier

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/tsawler/elsxml/markup"
	"github.com/tsawler/elsxml/model"
)

// figure resolves a ce:figure into a Figure. The image URL is built from
// the article PII and the large rendition listed in the attachments; when
// either cannot be found the URL is left empty.
func (a *article) figure(n *xmlquery.Node) *model.Figure {
	fig := &model.Figure{
		ID:      markup.Attr(n, "id"),
		Caption: a.caption(a.sel.figureCaption.First(n)),
	}

	link := a.sel.figureLink.First(n)
	if link == nil {
		return fig
	}
	locator := markup.Attr(link, "locator")
	if locator != "" {
		fig.ID = locator
	}

	filename := a.imageFilename(locator)
	pii := piiFromHref(markup.AttrNS(link, NSXLink, "href"))
	if filename == "" || pii == "" {
		a.r.log.Debug().
			Str("figure", fig.ID).
			Str("locator", locator).
			Bool("filename", filename != "").
			Bool("pii", pii != "").
			Msg("figure image not resolved")
		return fig
	}
	fig.URL = a.r.imageURLPrefix + pii + "-" + filename
	return fig
}

// imageFilename returns the first attachment filename that mentions locator
// and is the large rendition.
func (a *article) imageFilename(locator string) string {
	if locator == "" {
		return ""
	}
	if !a.loaded {
		for _, n := range a.sel.figureFilename.Select(a.root) {
			a.filenames = append(a.filenames, strings.TrimSpace(n.InnerText()))
		}
		a.loaded = true
	}
	for _, name := range a.filenames {
		if strings.Contains(name, locator) && strings.Contains(name, "_lrg") {
			return name
		}
	}
	return ""
}

// piiFromHref extracts the PII from an xlink:href such as
// "pii:S0040403916300016/gr1".
func piiFromHref(href string) string {
	seg, _, _ := strings.Cut(href, "/")
	if len(seg) <= len("pii:") {
		return ""
	}
	return seg[len("pii:"):]
}
