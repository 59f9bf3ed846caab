package model

import "strings"

// ElementType represents the type of document element
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeTitle
	ElementTypeHeading
	ElementTypeParagraph
	ElementTypeCaption
	ElementTypeCitation
	ElementTypeFootnote
	ElementTypeCell
	ElementTypeTable
	ElementTypeFigure
	ElementTypeMetaData
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeTitle:
		return "Title"
	case ElementTypeHeading:
		return "Heading"
	case ElementTypeParagraph:
		return "Paragraph"
	case ElementTypeCaption:
		return "Caption"
	case ElementTypeCitation:
		return "Citation"
	case ElementTypeFootnote:
		return "Footnote"
	case ElementTypeCell:
		return "Cell"
	case ElementTypeTable:
		return "Table"
	case ElementTypeFigure:
		return "Figure"
	case ElementTypeMetaData:
		return "MetaData"
	default:
		return "Unknown"
	}
}

// Element is the interface for all document elements
type Element interface {
	Type() ElementType
}

// TextElement is an interface for elements containing text
type TextElement interface {
	Element
	GetText() string
	GetID() string
	GetReferences() []string
}

// Content holds what every text-bearing element carries: the text itself,
// the id of the source node it came from and the ids of the references
// cited inside it.
type Content struct {
	Text       string   `json:"text"`
	ID         string   `json:"id,omitempty"`
	References []string `json:"references,omitempty"`
}

func (c Content) GetText() string         { return c.Text }
func (c Content) GetID() string           { return c.ID }
func (c Content) GetReferences() []string { return c.References }

// IsEmpty reports whether the text is blank.
func (c Content) IsEmpty() bool {
	return strings.TrimSpace(c.Text) == ""
}

// Title represents a document title
type Title struct {
	Content
}

func (t *Title) Type() ElementType { return ElementTypeTitle }

// Heading represents a section heading
type Heading struct {
	Content
}

func (h *Heading) Type() ElementType { return ElementTypeHeading }

// Paragraph represents a paragraph of body text
type Paragraph struct {
	Content
}

func (p *Paragraph) Type() ElementType { return ElementTypeParagraph }

// Caption represents a table or figure caption
type Caption struct {
	Content
}

func (c *Caption) Type() ElementType { return ElementTypeCaption }

// Citation represents one entry of a bibliography
type Citation struct {
	Content
}

func (c *Citation) Type() ElementType { return ElementTypeCitation }

// Footnote represents a table footnote
type Footnote struct {
	Content
}

func (f *Footnote) Type() ElementType { return ElementTypeFootnote }

// NewText creates a text element of the given kind. Kinds that do not carry
// text fall back to a Paragraph.
func NewText(kind ElementType, text, id string, refs []string) TextElement {
	c := Content{Text: text, ID: id, References: refs}
	switch kind {
	case ElementTypeTitle:
		return &Title{c}
	case ElementTypeHeading:
		return &Heading{c}
	case ElementTypeCaption:
		return &Caption{c}
	case ElementTypeCitation:
		return &Citation{c}
	case ElementTypeFootnote:
		return &Footnote{c}
	case ElementTypeCell:
		return &Cell{Content: c}
	default:
		return &Paragraph{c}
	}
}

// IsTextKind reports whether elements of kind carry text.
func IsTextKind(kind ElementType) bool {
	switch kind {
	case ElementTypeTitle, ElementTypeHeading, ElementTypeParagraph, ElementTypeCaption,
		ElementTypeCitation, ElementTypeFootnote, ElementTypeCell:
		return true
	}
	return false
}
