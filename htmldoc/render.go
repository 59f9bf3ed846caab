// Package htmldoc renders documents as HTML.
package htmldoc

import (
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/elsxml/model"
)

// Render builds an HTML5 tree for doc. Metadata goes into the head as meta
// elements; every other element is rendered into the body in order, with
// runs of citations collected into one ordered list.
func Render(doc *model.Document) *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html)
	head := element(atom.Head)
	body := element(atom.Body)
	root.AppendChild(htmlEl)
	htmlEl.AppendChild(head)
	htmlEl.AppendChild(body)

	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	if title := documentTitle(doc); title != "" {
		head.AppendChild(textElement(atom.Title, title))
	}

	var citations *html.Node
	for _, el := range doc.Elements {
		if _, ok := el.(*model.Citation); !ok {
			citations = nil
		}

		switch e := el.(type) {
		case *model.MetaData:
			renderMetadata(head, e)
		case *model.Title:
			body.AppendChild(textNode(atom.H1, e.Content))
		case *model.Heading:
			body.AppendChild(textNode(atom.H2, e.Content))
		case *model.Citation:
			if citations == nil {
				citations = element(atom.Ol, attr("class", "citations"))
				body.AppendChild(citations)
			}
			citations.AppendChild(textNode(atom.Li, e.Content))
		case *model.Table:
			renderTable(body, e)
		case *model.Figure:
			renderFigure(body, e)
		case *model.Paragraph:
			body.AppendChild(textNode(atom.P, e.Content))
		case model.TextElement:
			p := textNode(atom.P, model.Content{Text: e.GetText(), ID: e.GetID(), References: e.GetReferences()})
			p.Attr = append(p.Attr, attr("class", strings.ToLower(e.Type().String())))
			body.AppendChild(p)
		}
	}
	return root
}

// Write renders doc as HTML to w.
func Write(w io.Writer, doc *model.Document) error {
	return html.Render(w, Render(doc))
}

// String renders doc as an HTML string.
func String(doc *model.Document) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, doc); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func documentTitle(doc *model.Document) string {
	if titles := doc.Titles(); len(titles) > 0 {
		return titles[0].Text
	}
	if m := doc.Metadata(); m != nil && m.Title != nil {
		return *m.Title
	}
	return ""
}

func renderMetadata(head *html.Node, m *model.MetaData) {
	fields := m.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		head.AppendChild(element(atom.Meta, attr("name", k), attr("content", fields[k])))
	}
}

func renderTable(body *html.Node, t *model.Table) {
	table := element(atom.Table)
	if t.ID != "" {
		table.Attr = append(table.Attr, attr("id", t.ID))
	}
	if t.Caption != nil && !t.Caption.IsEmpty() {
		table.AppendChild(textElement(atom.Caption, t.Caption.Text))
	}

	if header := t.Header(); len(header) > 0 {
		thead := element(atom.Thead)
		for _, row := range header {
			thead.AppendChild(renderRow(row, atom.Th))
		}
		table.AppendChild(thead)
	}
	tbody := element(atom.Tbody)
	for _, row := range t.Body() {
		tbody.AppendChild(renderRow(row, atom.Td))
	}
	table.AppendChild(tbody)
	body.AppendChild(table)

	if len(t.Footnotes) > 0 {
		notes := element(atom.Div, attr("class", "table-footnotes"))
		for _, fn := range t.Footnotes {
			notes.AppendChild(textNode(atom.P, fn.Content))
		}
		body.AppendChild(notes)
	}
}

func renderRow(cells []model.Cell, cellTag atom.Atom) *html.Node {
	tr := element(atom.Tr)
	for _, c := range cells {
		tr.AppendChild(textElement(cellTag, c.Text))
	}
	return tr
}

func renderFigure(body *html.Node, f *model.Figure) {
	fig := element(atom.Figure)
	if f.ID != "" {
		fig.Attr = append(fig.Attr, attr("id", f.ID))
	}
	caption := f.GetText()
	if f.URL != "" {
		fig.AppendChild(element(atom.Img, attr("src", f.URL), attr("alt", caption)))
	}
	if caption != "" {
		fig.AppendChild(textElement(atom.Figcaption, caption))
	}
	body.AppendChild(fig)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func textElement(a atom.Atom, text string) *html.Node {
	n := element(a)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return n
}

// textNode renders c with its id and, when present, the ids it cites in a
// data-refs attribute.
func textNode(a atom.Atom, c model.Content) *html.Node {
	n := textElement(a, c.Text)
	if c.ID != "" {
		n.Attr = append(n.Attr, attr("id", c.ID))
	}
	if len(c.References) > 0 {
		n.Attr = append(n.Attr, attr("data-refs", strings.Join(c.References, " ")))
	}
	return n
}
