package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Document represents a complete article as an ordered list of elements
type Document struct {
	Elements []Element
}

// NewDocument creates a document holding elements in the given order
func NewDocument(elements ...Element) *Document {
	doc := &Document{
		Elements: make([]Element, 0, len(elements)),
	}
	for _, el := range elements {
		if el != nil {
			doc.Elements = append(doc.Elements, el)
		}
	}
	return doc
}

// Len returns the number of elements
func (d *Document) Len() int {
	return len(d.Elements)
}

// Titles returns all titles in document order
func (d *Document) Titles() []*Title {
	var out []*Title
	for _, el := range d.Elements {
		if t, ok := el.(*Title); ok {
			out = append(out, t)
		}
	}
	return out
}

// Headings returns all headings in document order
func (d *Document) Headings() []*Heading {
	var out []*Heading
	for _, el := range d.Elements {
		if h, ok := el.(*Heading); ok {
			out = append(out, h)
		}
	}
	return out
}

// Paragraphs returns all paragraphs in document order
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, el := range d.Elements {
		if p, ok := el.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns all tables in document order
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, el := range d.Elements {
		if t, ok := el.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Figures returns all figures in document order
func (d *Document) Figures() []*Figure {
	var out []*Figure
	for _, el := range d.Elements {
		if f, ok := el.(*Figure); ok {
			out = append(out, f)
		}
	}
	return out
}

// Citations returns all citations in document order
func (d *Document) Citations() []*Citation {
	var out []*Citation
	for _, el := range d.Elements {
		if c, ok := el.(*Citation); ok {
			out = append(out, c)
		}
	}
	return out
}

// Metadata returns the first MetaData element, or nil if there is none
func (d *Document) Metadata() *MetaData {
	for _, el := range d.Elements {
		if m, ok := el.(*MetaData); ok {
			return m
		}
	}
	return nil
}

// ExtractText returns the text of every text-bearing element and table,
// separated by blank lines
func (d *Document) ExtractText() string {
	var parts []string
	for _, el := range d.Elements {
		switch e := el.(type) {
		case TextElement:
			parts = append(parts, e.GetText())
		case *Table:
			if e.Caption != nil && !e.Caption.IsEmpty() {
				parts = append(parts, e.Caption.Text)
			}
			parts = append(parts, strings.TrimRight(e.GetText(), "\n"))
		case *Figure:
			if e.Caption != nil && !e.Caption.IsEmpty() {
				parts = append(parts, e.Caption.Text)
			}
		}
	}
	return strings.Join(parts, "\n\n")
}

// ToMarkdown renders the document as markdown
func (d *Document) ToMarkdown() string {
	var sb strings.Builder
	citation := 0
	for _, el := range d.Elements {
		if _, ok := el.(*Citation); !ok && citation > 0 {
			// a non-citation element ends the list
			citation = 0
			sb.WriteString("\n")
		}
		switch e := el.(type) {
		case *Title:
			sb.WriteString("# " + e.Text + "\n\n")
		case *Heading:
			sb.WriteString("## " + e.Text + "\n\n")
		case *Citation:
			citation++
			sb.WriteString(strconv.Itoa(citation) + ". " + e.Text + "\n")
		case *Table:
			if e.Caption != nil && !e.Caption.IsEmpty() {
				sb.WriteString("**" + e.Caption.Text + "**\n\n")
			}
			sb.WriteString(e.ToMarkdown())
			for _, fn := range e.Footnotes {
				sb.WriteString("\n" + fn.Text + "\n")
			}
			sb.WriteString("\n")
		case *Figure:
			caption := e.GetText()
			if e.URL != "" {
				sb.WriteString("![" + caption + "](" + e.URL + ")\n\n")
			} else if caption != "" {
				sb.WriteString("*" + caption + "*\n\n")
			}
		case TextElement:
			sb.WriteString(e.GetText() + "\n\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

type taggedElement struct {
	Type string  `json:"type"`
	Data Element `json:"data"`
}

// MarshalJSON encodes the elements with their type names so the output can
// be consumed without knowing the Go types.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := struct {
		Elements []taggedElement `json:"elements"`
	}{
		Elements: make([]taggedElement, 0, len(d.Elements)),
	}
	for _, el := range d.Elements {
		out.Elements = append(out.Elements, taggedElement{Type: el.Type().String(), Data: el})
	}
	return json.Marshal(out)
}
