package model

import (
	"strings"
)

// Table represents a table whose rows have been resolved into a dense grid.
// Spanning cells are repeated at every grid position they cover.
type Table struct {
	ID         string      `json:"id,omitempty"`
	Caption    *Caption    `json:"caption"`
	Rows       [][]Cell    `json:"rows"`
	HeaderRows int         `json:"header_rows"`
	Footnotes  []*Footnote `json:"footnotes,omitempty"`
}

func (t *Table) Type() ElementType { return ElementTypeTable }
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			sb.WriteString(cell.Text)
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the first row
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// GetCell returns the cell at the given row and column (0-indexed)
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// Header returns the header rows
func (t *Table) Header() [][]Cell {
	n := t.HeaderRows
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// Body returns the rows following the header
func (t *Table) Body() [][]Cell {
	n := t.HeaderRows
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[n:]
}

// ToMarkdown converts the table to markdown format. The first row is used as
// the markdown header whether or not the source marked it as one.
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	writeRow := func(row []Cell) {
		for j, cell := range row {
			sb.WriteString("| ")
			text := strings.ReplaceAll(cell.Text, "\n", " ")
			sb.WriteString(strings.ReplaceAll(text, "|", "\\|"))
			sb.WriteString(" ")
			if j == len(row)-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	writeRow(t.Rows[0])

	// Separator
	for j := range t.Rows[0] {
		sb.WriteString("|---")
		if j == len(t.Rows[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for i := 1; i < len(t.Rows); i++ {
		writeRow(t.Rows[i])
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			// Escape quotes and wrap in quotes if necessary
			text := cell.Text
			if strings.Contains(text, ",") || strings.Contains(text, "\"") || strings.Contains(text, "\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Cell represents a table cell
type Cell struct {
	Content
	RowSpan int `json:"row_span,omitempty"`
	ColSpan int `json:"col_span,omitempty"`
}

func (c *Cell) Type() ElementType { return ElementTypeCell }

// EmptyCell returns the padding cell used to fill gaps in a grid.
func EmptyCell() Cell {
	return Cell{RowSpan: 1, ColSpan: 1}
}
