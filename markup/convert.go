package markup

import (
	"encoding/xml"
	"strings"
	"unicode"

	"github.com/antchfx/xmlquery"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/elsxml/model"
)

// Specials holds the elements that replace indexed nodes during conversion.
// An empty entry drops the node and its subtree.
type Specials map[int][]model.Element

// Refs holds, per indexed parent node, the reference ids found below it in
// document order.
type Refs map[int][]string

// Converter turns cleaned subtrees into model elements.
type Converter struct {
	Index *Index

	// Inline elements continue the text of their parent instead of starting
	// a new element.
	Inline map[xml.Name]bool

	// Break elements end the current text element.
	Break map[xml.Name]bool
}

// NewConverter returns a Converter over ix treating the given names as inline.
func NewConverter(ix *Index, inline, breaks []xml.Name) *Converter {
	c := &Converter{
		Index:  ix,
		Inline: make(map[xml.Name]bool, len(inline)),
		Break:  make(map[xml.Name]bool, len(breaks)),
	}
	for _, n := range inline {
		c.Inline[n] = true
	}
	for _, n := range breaks {
		c.Break[n] = true
	}
	return c
}

// piece is either a run of text being assembled or a finished element taken
// from specials.
type piece struct {
	kind model.ElementType
	text string
	id   string
	refs []string
	el   model.Element
}

func (p *piece) isText() bool { return p.el == nil }

func (p *piece) merge(o piece) {
	p.text += o.text
	p.refs = append(p.refs, o.refs...)
}

// ParseElement converts n into paragraphs and any special elements found
// below it, in document order. Text elements with blank text are dropped.
func (c *Converter) ParseElement(n *xmlquery.Node, specials Specials, refs Refs) []model.Element {
	pieces := c.parse(n, "", model.ElementTypeParagraph, specials, refs)
	out := make([]model.Element, 0, len(pieces))
	for _, p := range pieces {
		if !p.isText() {
			out = append(out, p.el)
			continue
		}
		text := NormalizeText(p.text)
		if text == "" {
			continue
		}
		out = append(out, model.NewText(p.kind, text, p.id, p.refs))
	}
	return out
}

// ParseText converts n into exactly one text element of kind. All text
// below n is joined with single spaces.
func (c *Converter) ParseText(n *xmlquery.Node, kind model.ElementType, specials Specials, refs Refs) model.TextElement {
	if n == nil {
		return model.NewText(kind, "", "", nil)
	}
	id := Attr(n, "id")
	var (
		parts   []string
		allRefs []string
	)
	for _, p := range c.parse(n, id, kind, specials, refs) {
		if !p.isText() {
			if te, ok := p.el.(model.TextElement); ok {
				parts = append(parts, te.GetText())
				allRefs = append(allRefs, te.GetReferences()...)
			}
			continue
		}
		if id == "" {
			id = p.id
		}
		allRefs = append(allRefs, p.refs...)
		if text := NormalizeText(p.text); text != "" {
			parts = append(parts, text)
		}
	}
	return model.NewText(kind, strings.Join(parts, " "), id, allRefs)
}

func (c *Converter) parse(n *xmlquery.Node, id string, kind model.ElementType, specials Specials, refs Refs) []piece {
	if !IsElement(n) {
		return nil
	}

	var nodeRefs []string
	if c.Index != nil {
		if i, ok := c.Index.ID(n); ok {
			if els, ok := specials[i]; ok {
				out := make([]piece, 0, len(els))
				for _, el := range els {
					out = append(out, piece{el: el})
				}
				return out
			}
			nodeRefs = refs[i]
		}
	}
	if v := Attr(n, "id"); v != "" {
		id = v
	}

	var out []piece
	if text := Text(n); text != "" || len(nodeRefs) > 0 {
		out = append(out, piece{kind: kind, text: text, id: id, refs: append([]string(nil), nodeRefs...)})
	}

	for _, child := range childNodes(n) {
		name := nameOf(child)
		if c.Break[name] {
			out = append(out, piece{kind: kind, id: id})
		}

		inline := c.Inline[name]
		sub := c.parse(child, id, kind, specials, refs)
		if inline && len(sub) > 0 && canMerge(out, sub[0]) {
			out[len(out)-1].merge(sub[0])
			sub = sub[1:]
		}
		out = append(out, sub...)

		if tail := Tail(child); tail != "" {
			t := piece{kind: kind, text: tail, id: id}
			if inline && canMerge(out, t) {
				out[len(out)-1].merge(t)
			} else {
				out = append(out, t)
			}
		}
	}
	return out
}

func canMerge(out []piece, next piece) bool {
	if len(out) == 0 {
		return false
	}
	last := out[len(out)-1]
	return last.isText() && next.isText() && last.kind == next.kind
}

// childNodes returns the non-text children of n. Comments and processing
// instructions are kept so their tails are not lost.
func childNodes(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if !isText(ch) {
			out = append(out, ch)
		}
	}
	return out
}

func nameOf(n *xmlquery.Node) xml.Name {
	return xml.Name{Space: n.NamespaceURI, Local: n.Data}
}

// ParseReference returns the reference ids carried by a cross-reference
// marker: the fragment of href, else the whitespace separated refid list,
// else rid, else idref, else the trimmed inner text.
func ParseReference(n *xmlquery.Node) []string {
	if href := Attr(n, "href"); href != "" {
		if i := strings.IndexByte(href, '#'); i >= 0 && i+1 < len(href) {
			return []string{href[i+1:]}
		}
	}
	if ids := strings.Fields(Attr(n, "refid")); len(ids) > 0 {
		return ids
	}
	for _, name := range []string{"rid", "idref"} {
		if v := strings.TrimSpace(Attr(n, name)); v != "" {
			return []string{v}
		}
	}
	if text := strings.TrimSpace(n.InnerText()); text != "" {
		return []string{text}
	}
	return nil
}

// NormalizeText composes text to NFC, collapses whitespace runs into single
// spaces and trims the ends.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}
