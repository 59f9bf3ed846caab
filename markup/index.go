package markup

import "github.com/antchfx/xmlquery"

// Index assigns every element below a root a stable integer in document
// order. Region maps are keyed by these integers so lookups never depend on
// pointer identity of a tree that later passes may rearrange.
type Index struct {
	ids map[*xmlquery.Node]int
}

// NewIndex numbers root and its descendant elements, starting at 0.
func NewIndex(root *xmlquery.Node) *Index {
	ix := &Index{ids: make(map[*xmlquery.Node]int)}
	Walk(root, func(n *xmlquery.Node) bool {
		ix.ids[n] = len(ix.ids)
		return true
	})
	return ix
}

// ID returns the number of n and whether n was indexed.
func (ix *Index) ID(n *xmlquery.Node) (int, bool) {
	id, ok := ix.ids[n]
	return id, ok
}

// Len returns the number of indexed elements.
func (ix *Index) Len() int {
	return len(ix.ids)
}
