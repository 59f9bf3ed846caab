// Package tables resolves spanning table cells into a dense grid.
//
// Source tables describe each physical row as a list of entries, some of
// which cover several columns or continue into following rows. A [Grid]
// places entries the way a renderer would: each entry goes into the next
// free column of its row, and the columns it covers in later rows are
// reserved so that their own entries shift right.
//
// # Building a grid
//
//	g := tables.NewGrid()
//	g.AddRow([]model.Cell{a, b})
//	g.AddRow([]model.Cell{c})
//	rows, header := g.Dense(1)
//
// [Grid.Dense] pads every row to the grid width with empty cells and drops
// rows that hold no text at all.
//
// # CALS spans
//
// [CALSSpan] reads the namest, nameend and morerows attributes used by CALS
// tables. Column names may be bare numbers ("3") or carry a "col" prefix
// ("col3"). Missing or unparseable values fall back to a single cell.
package tables
