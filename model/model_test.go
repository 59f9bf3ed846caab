package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// ============================================================================
// Element Tests
// ============================================================================

func TestElementTypeString(t *testing.T) {
	tests := []struct {
		et   ElementType
		want string
	}{
		{ElementTypeTitle, "Title"},
		{ElementTypeHeading, "Heading"},
		{ElementTypeParagraph, "Paragraph"},
		{ElementTypeCaption, "Caption"},
		{ElementTypeCitation, "Citation"},
		{ElementTypeFootnote, "Footnote"},
		{ElementTypeCell, "Cell"},
		{ElementTypeTable, "Table"},
		{ElementTypeFigure, "Figure"},
		{ElementTypeMetaData, "MetaData"},
		{ElementTypeUnknown, "Unknown"},
		{ElementType(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.et.String(); got != tt.want {
			t.Errorf("ElementType(%d).String() = %q, want %q", tt.et, got, tt.want)
		}
	}
}

func TestNewText(t *testing.T) {
	tests := []struct {
		kind ElementType
		want ElementType
	}{
		{ElementTypeTitle, ElementTypeTitle},
		{ElementTypeHeading, ElementTypeHeading},
		{ElementTypeCaption, ElementTypeCaption},
		{ElementTypeCitation, ElementTypeCitation},
		{ElementTypeFootnote, ElementTypeFootnote},
		{ElementTypeCell, ElementTypeCell},
		{ElementTypeParagraph, ElementTypeParagraph},
		{ElementTypeTable, ElementTypeParagraph},
	}

	for _, tt := range tests {
		el := NewText(tt.kind, "text", "id1", []string{"bib1"})
		if el.Type() != tt.want {
			t.Errorf("NewText(%v).Type() = %v, want %v", tt.kind, el.Type(), tt.want)
		}
		if el.GetText() != "text" {
			t.Errorf("NewText(%v).GetText() = %q, want %q", tt.kind, el.GetText(), "text")
		}
		if el.GetID() != "id1" {
			t.Errorf("NewText(%v).GetID() = %q, want %q", tt.kind, el.GetID(), "id1")
		}
		if refs := el.GetReferences(); len(refs) != 1 || refs[0] != "bib1" {
			t.Errorf("NewText(%v).GetReferences() = %v", tt.kind, refs)
		}
	}
}

func TestIsTextKind(t *testing.T) {
	if !IsTextKind(ElementTypeCell) {
		t.Error("Cell should be a text kind")
	}
	if IsTextKind(ElementTypeTable) || IsTextKind(ElementTypeFigure) || IsTextKind(ElementTypeMetaData) {
		t.Error("Table, Figure and MetaData should not be text kinds")
	}
}

func TestContentIsEmpty(t *testing.T) {
	if !(Content{Text: "  \n"}).IsEmpty() {
		t.Error("whitespace content should be empty")
	}
	if (Content{Text: "a"}).IsEmpty() {
		t.Error("non-blank content should not be empty")
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func cell(text string) Cell {
	return Cell{Content: Content{Text: text}, RowSpan: 1, ColSpan: 1}
}

func sampleTable() *Table {
	return &Table{
		ID:      "tbl1",
		Caption: &Caption{Content{Text: "Yields"}},
		Rows: [][]Cell{
			{cell("Compound"), cell("Yield")},
			{cell("A"), cell("85%")},
			{cell("B, crude"), cell("12\"")},
		},
		HeaderRows: 1,
	}
}

func TestTableDimensions(t *testing.T) {
	table := sampleTable()
	if table.RowCount() != 3 {
		t.Errorf("RowCount() = %d, want 3", table.RowCount())
	}
	if table.ColCount() != 2 {
		t.Errorf("ColCount() = %d, want 2", table.ColCount())
	}
	if (&Table{}).ColCount() != 0 {
		t.Error("empty table ColCount() should be 0")
	}
}

func TestTableGetCell(t *testing.T) {
	table := sampleTable()
	if c := table.GetCell(1, 1); c == nil || c.Text != "85%" {
		t.Errorf("GetCell(1, 1) = %v, want 85%%", c)
	}
	if table.GetCell(-1, 0) != nil || table.GetCell(0, 5) != nil || table.GetCell(9, 0) != nil {
		t.Error("out of range GetCell should return nil")
	}
}

func TestTableHeaderBody(t *testing.T) {
	table := sampleTable()
	if len(table.Header()) != 1 || len(table.Body()) != 2 {
		t.Errorf("Header/Body = %d/%d, want 1/2", len(table.Header()), len(table.Body()))
	}
	table.HeaderRows = 10
	if len(table.Header()) != 3 || len(table.Body()) != 0 {
		t.Error("HeaderRows past the end should be clamped")
	}
}

func TestTableGetText(t *testing.T) {
	want := "Compound\tYield\nA\t85%\nB, crude\t12\"\n"
	if got := sampleTable().GetText(); got != want {
		t.Errorf("GetText() = %q, want %q", got, want)
	}
}

func TestTableToMarkdown(t *testing.T) {
	md := sampleTable().ToMarkdown()
	lines := strings.Split(strings.TrimSpace(md), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 markdown lines, got %d: %q", len(lines), md)
	}
	if lines[0] != "| Compound | Yield |" {
		t.Errorf("header line = %q", lines[0])
	}
	if lines[1] != "|---|---|" {
		t.Errorf("separator line = %q", lines[1])
	}
	if (&Table{}).ToMarkdown() != "" {
		t.Error("empty table should render as empty markdown")
	}
}

func TestTableToCSV(t *testing.T) {
	csv := sampleTable().ToCSV()
	if !strings.Contains(csv, "\"B, crude\",\"12\"\"\"") {
		t.Errorf("CSV escaping wrong: %q", csv)
	}
}

// ============================================================================
// MetaData Tests
// ============================================================================

func TestMetaData(t *testing.T) {
	meta := &MetaData{}
	if !meta.IsEmpty() {
		t.Error("zero MetaData should be empty")
	}

	meta.Title = StringPtr("Catalysis")
	meta.Authors = []string{"Smith", "Jones"}
	if meta.IsEmpty() {
		t.Error("MetaData with title should not be empty")
	}

	fields := meta.Fields()
	if fields["title"] != "Catalysis" {
		t.Errorf("Fields()[title] = %q", fields["title"])
	}
	if fields["authors"] != "Smith; Jones" {
		t.Errorf("Fields()[authors] = %q", fields["authors"])
	}
	if _, ok := fields["doi"]; ok {
		t.Error("unset doi should not appear in Fields()")
	}
}

// ============================================================================
// Document Tests
// ============================================================================

func sampleDocument() *Document {
	return NewDocument(
		&MetaData{Title: StringPtr("Catalysis")},
		&Title{Content{Text: "Catalysis"}},
		&Heading{Content{Text: "1. Introduction"}},
		&Paragraph{Content{Text: "Body text.", References: []string{"bib1"}}},
		sampleTable(),
		&Figure{ID: "gr1", Caption: &Caption{Content{Text: "Fig. 1."}}, URL: "https://example.org/gr1.jpg"},
		&Citation{Content{Text: "Smith, 2001."}},
		&Citation{Content{Text: "Jones, 2002."}},
		nil,
	)
}

func TestNewDocumentSkipsNil(t *testing.T) {
	doc := sampleDocument()
	if doc.Len() != 8 {
		t.Errorf("Len() = %d, want 8", doc.Len())
	}
}

func TestDocumentAccessors(t *testing.T) {
	doc := sampleDocument()

	if len(doc.Titles()) != 1 {
		t.Errorf("Titles() = %d, want 1", len(doc.Titles()))
	}
	if len(doc.Headings()) != 1 {
		t.Errorf("Headings() = %d, want 1", len(doc.Headings()))
	}
	if len(doc.Paragraphs()) != 1 {
		t.Errorf("Paragraphs() = %d, want 1", len(doc.Paragraphs()))
	}
	if len(doc.Tables()) != 1 {
		t.Errorf("Tables() = %d, want 1", len(doc.Tables()))
	}
	if len(doc.Figures()) != 1 {
		t.Errorf("Figures() = %d, want 1", len(doc.Figures()))
	}
	if len(doc.Citations()) != 2 {
		t.Errorf("Citations() = %d, want 2", len(doc.Citations()))
	}
	if m := doc.Metadata(); m == nil || *m.Title != "Catalysis" {
		t.Error("Metadata() did not return the MetaData element")
	}
	if NewDocument().Metadata() != nil {
		t.Error("empty document should have nil Metadata()")
	}
}

func TestDocumentExtractText(t *testing.T) {
	text := sampleDocument().ExtractText()
	for _, want := range []string{"Catalysis", "1. Introduction", "Body text.", "Yields", "A\t85%", "Fig. 1.", "Jones, 2002."} {
		if !strings.Contains(text, want) {
			t.Errorf("ExtractText() missing %q", want)
		}
	}
}

func TestDocumentToMarkdown(t *testing.T) {
	md := sampleDocument().ToMarkdown()
	for _, want := range []string{
		"# Catalysis\n",
		"## 1. Introduction\n",
		"**Yields**",
		"| Compound | Yield |",
		"![Fig. 1.](https://example.org/gr1.jpg)",
		"1. Smith, 2001.\n2. Jones, 2002.\n",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("ToMarkdown() missing %q\n%s", want, md)
		}
	}
}

func TestDocumentMarshalJSON(t *testing.T) {
	data, err := json.Marshal(sampleDocument())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded struct {
		Elements []struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(decoded.Elements) != 8 {
		t.Fatalf("got %d elements, want 8", len(decoded.Elements))
	}
	if decoded.Elements[0].Type != "MetaData" || decoded.Elements[4].Type != "Table" {
		t.Errorf("unexpected types %q, %q", decoded.Elements[0].Type, decoded.Elements[4].Type)
	}
	if !strings.Contains(string(decoded.Elements[3].Data), `"references":["bib1"]`) {
		t.Errorf("paragraph references not encoded: %s", decoded.Elements[3].Data)
	}
}
