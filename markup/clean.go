package markup

import "github.com/antchfx/xmlquery"

// Cleaner removes markup that carries no content before conversion.
//
// Kill selectors remove whole subtrees but keep their tails. Strip selectors
// remove only the tag: text, children and tail are merged into the
// surrounding text without a separator. Kill runs first, so a node matched by
// both is dropped.
type Cleaner struct {
	Kill  []*Selector
	Strip []*Selector

	KeepComments               bool
	KeepProcessingInstructions bool
}

// Clean applies c to the tree below root in place.
func (c *Cleaner) Clean(root *xmlquery.Node) {
	if root == nil {
		return
	}
	c.dropMisc(root)

	var kill []*xmlquery.Node
	for _, s := range c.Kill {
		kill = append(kill, s.Select(root)...)
	}
	for _, n := range kill {
		if n.Type == xmlquery.AttributeNode {
			continue
		}
		Kill(n)
	}

	for _, s := range c.Strip {
		for _, n := range s.Select(root) {
			if !IsElement(n) || !attached(n, root) {
				continue
			}
			Unwrap(n, Concat)
		}
	}
}

func (c *Cleaner) dropMisc(root *xmlquery.Node) {
	var drop []*xmlquery.Node
	var visit func(n *xmlquery.Node)
	visit = func(n *xmlquery.Node) {
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			switch ch.Type {
			case xmlquery.CommentNode:
				if !c.KeepComments {
					drop = append(drop, ch)
				}
			case xmlquery.ProcessingInstruction:
				if !c.KeepProcessingInstructions {
					drop = append(drop, ch)
				}
			case xmlquery.ElementNode:
				visit(ch)
			}
		}
	}
	visit(root)
	for _, n := range drop {
		Kill(n)
	}
}

// attached reports whether n is still below root.
func attached(n, root *xmlquery.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}
