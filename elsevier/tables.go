package elsevier

import (
	"github.com/antchfx/xmlquery"

	"github.com/tsawler/elsxml/markup"
	"github.com/tsawler/elsxml/model"
	"github.com/tsawler/elsxml/tables"
)

// table reconstructs a ce:table. Header rows come first, then body rows;
// CALS span attributes are resolved into a dense grid.
func (a *article) table(n *xmlquery.Node) *model.Table {
	t := &model.Table{
		ID:      markup.Attr(n, "id"),
		Caption: a.caption(a.sel.tableCaption.First(n)),
	}

	g := tables.NewGrid()
	head := a.sel.tableHeadRow.Select(n)
	for _, row := range head {
		g.AddRow(a.rowCells(row))
	}
	for _, row := range a.sel.tableBodyRow.Select(n) {
		g.AddRow(a.rowCells(row))
	}
	t.Rows, t.HeaderRows = g.Dense(len(head))

	for _, fn := range a.sel.tableFootnote.Select(n) {
		f, ok := a.conv.ParseText(fn, model.ElementTypeFootnote, a.specials, a.refs).(*model.Footnote)
		if ok && !f.IsEmpty() {
			t.Footnotes = append(t.Footnotes, f)
		}
	}
	return t
}

func (a *article) rowCells(row *xmlquery.Node) []model.Cell {
	entries := a.sel.tableCell.Select(row)
	cells := make([]model.Cell, 0, len(entries))
	for _, td := range entries {
		var cell model.Cell
		if c, ok := a.conv.ParseText(td, model.ElementTypeCell, a.specials, a.refs).(*model.Cell); ok {
			cell = *c
		}
		span := tables.CALSSpan(markup.Attr(td, "namest"), markup.Attr(td, "nameend"), markup.Attr(td, "morerows"))
		cell.RowSpan, cell.ColSpan = span.Rows, span.Cols
		cells = append(cells, cell)
	}
	return cells
}
