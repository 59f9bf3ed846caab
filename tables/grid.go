package tables

import (
	"sort"

	"github.com/tsawler/elsxml/model"
)

// Grid maps (row, column) positions to cells.
type Grid struct {
	cells  map[int]map[int]model.Cell
	rows   int // physical rows added so far
	maxCol int
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{
		cells:  make(map[int]map[int]model.Cell),
		maxCol: -1,
	}
}

// AddRow places the entries of the next physical row. Each cell's RowSpan
// and ColSpan say how many positions it covers; values below 1 count as 1.
func (g *Grid) AddRow(cells []model.Cell) {
	row := g.rows
	g.rows++

	col := 0
	for _, cell := range cells {
		span := Span{Rows: cell.RowSpan, Cols: cell.ColSpan}
		if span.Rows < 1 {
			span.Rows = 1
		}
		if span.Cols < 1 {
			span.Cols = 1
		}
		cell.RowSpan, cell.ColSpan = span.Rows, span.Cols

		for i := 0; i < span.Cols; i++ {
			for j := 0; j < span.Rows; j++ {
				target := row + j
				for g.occupied(target, col) {
					col++
				}
				g.set(target, col, cell)
			}
			col++
		}
	}
}

func (g *Grid) occupied(row, col int) bool {
	_, ok := g.cells[row][col]
	return ok
}

func (g *Grid) set(row, col int, cell model.Cell) {
	r, ok := g.cells[row]
	if !ok {
		r = make(map[int]model.Cell)
		g.cells[row] = r
	}
	r[col] = cell
	if col > g.maxCol {
		g.maxCol = col
	}
}

// Width returns one more than the largest filled column.
func (g *Grid) Width() int {
	return g.maxCol + 1
}

// Dense returns the grid as rows of equal width. Unfilled positions become
// empty cells and rows without any text are dropped. header is the number of
// leading physical rows that form the table header; the returned count is
// how many of them survived.
func (g *Grid) Dense(header int) ([][]model.Cell, int) {
	keys := make([]int, 0, len(g.cells))
	for r := range g.cells {
		keys = append(keys, r)
	}
	sort.Ints(keys)

	width := g.Width()
	rows := make([][]model.Cell, 0, len(keys))
	kept := 0
	for _, r := range keys {
		row := make([]model.Cell, width)
		empty := true
		for c := 0; c < width; c++ {
			cell, ok := g.cells[r][c]
			if !ok {
				cell = model.EmptyCell()
			}
			if !cell.IsEmpty() {
				empty = false
			}
			row[c] = cell
		}
		if empty {
			continue
		}
		rows = append(rows, row)
		if r < header {
			kept++
		}
	}
	return rows, kept
}
