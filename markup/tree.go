package markup

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// The functions in this file give an xmlquery tree the text/tail view used
// by the cleaners: the text of an element is the run of character data
// before its first non-text child, and its tail is the run of character data
// that follows it up to the next non-text sibling.

func isText(n *xmlquery.Node) bool {
	return n != nil && (n.Type == xmlquery.TextNode || n.Type == xmlquery.CharDataNode)
}

// IsElement reports whether n is an element node.
func IsElement(n *xmlquery.Node) bool {
	return n != nil && n.Type == xmlquery.ElementNode
}

// Text returns the character data preceding the first non-text child of n.
func Text(n *xmlquery.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; isText(c); c = c.NextSibling {
		sb.WriteString(c.Data)
	}
	return sb.String()
}

// Tail returns the character data following n up to its next non-text sibling.
func Tail(n *xmlquery.Node) string {
	var sb strings.Builder
	for c := n.NextSibling; isText(c); c = c.NextSibling {
		sb.WriteString(c.Data)
	}
	return sb.String()
}

// SetText replaces the text of n. An empty s removes it.
func SetText(n *xmlquery.Node, s string) {
	for c := n.FirstChild; isText(c); {
		next := c.NextSibling
		xmlquery.RemoveFromTree(c)
		c = next
	}
	if s == "" {
		return
	}
	prependChild(n, &xmlquery.Node{Type: xmlquery.TextNode, Data: s})
}

// SetTail replaces the tail of n. An empty s removes it. Nodes without a
// parent have no tail.
func SetTail(n *xmlquery.Node, s string) {
	if n.Parent == nil {
		return
	}
	for c := n.NextSibling; isText(c); {
		next := c.NextSibling
		xmlquery.RemoveFromTree(c)
		c = next
	}
	if s == "" {
		return
	}
	xmlquery.AddImmediateSibling(n, &xmlquery.Node{Type: xmlquery.TextNode, Data: s})
}

func prependChild(parent, n *xmlquery.Node) {
	n.Parent = parent
	n.PrevSibling = nil
	n.NextSibling = parent.FirstChild
	if parent.FirstChild != nil {
		parent.FirstChild.PrevSibling = n
	} else {
		parent.LastChild = n
	}
	parent.FirstChild = n
}

// Children returns the element children of n in document order.
func Children(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c) {
			out = append(out, c)
		}
	}
	return out
}

// Previous returns the closest preceding sibling that is not character data.
func Previous(n *xmlquery.Node) *xmlquery.Node {
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		if !isText(c) {
			return c
		}
	}
	return nil
}

// Last returns the last child of n that is not character data.
func Last(n *xmlquery.Node) *xmlquery.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if !isText(c) {
			return c
		}
	}
	return nil
}

// Splice replaces n in its parent by its children. The text and tail of n
// are dropped; callers merge them elsewhere first.
func Splice(n *xmlquery.Node) {
	if n.Parent == nil {
		return
	}
	SetTail(n, "")
	SetText(n, "")

	prev := n
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		xmlquery.RemoveFromTree(c)
		xmlquery.AddImmediateSibling(prev, c)
		prev = c
		c = next
	}
	xmlquery.RemoveFromTree(n)
}

// JoinFunc combines existing text with text being merged into it.
type JoinFunc func(target, s string) string

// Concat joins text without a separator.
func Concat(target, s string) string {
	return target + s
}

// Unwrap removes the tag n but keeps its content: its text is appended to
// the preceding sibling's tail (or the parent's text), its tail to its last
// child's tail when it has children, and its children take its place.
func Unwrap(n *xmlquery.Node, join JoinFunc) {
	parent := n.Parent
	if parent == nil {
		return
	}
	prev := Previous(n)

	if text := Text(n); text != "" {
		if prev == nil {
			SetText(parent, join(Text(parent), text))
		} else {
			SetTail(prev, join(Tail(prev), text))
		}
	}

	if tail := Tail(n); tail != "" {
		if last := Last(n); last != nil {
			SetTail(last, Tail(last)+tail)
		} else if prev == nil {
			// the text may have been merged above, so re-read the target
			SetText(parent, join(Text(parent), tail))
		} else {
			SetTail(prev, join(Tail(prev), tail))
		}
	}

	Splice(n)
}

// Kill removes n and its subtree. The tail stays in the tree and joins the
// preceding text.
func Kill(n *xmlquery.Node) {
	xmlquery.RemoveFromTree(n)
}

// Attr returns the value of the attribute with the given local name in any
// namespace.
func Attr(n *xmlquery.Node, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// AttrNS returns the value of the attribute with the given namespace URI and
// local name.
func AttrNS(n *xmlquery.Node, uri, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local && a.NamespaceURI == uri {
			return a.Value
		}
	}
	return ""
}

// Walk calls fn for n and every element below it in document order. Returning
// false from fn skips the children of that node. fn may rewrite text and
// tails but must not move elements.
func Walk(n *xmlquery.Node, fn func(*xmlquery.Node) bool) {
	if IsElement(n) && !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}
