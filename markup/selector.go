package markup

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Namespaces maps selector prefixes to namespace URIs.
type Namespaces map[string]string

// Clone returns a copy of ns.
func (ns Namespaces) Clone() Namespaces {
	out := make(Namespaces, len(ns))
	for k, v := range ns {
		out[k] = v
	}
	return out
}

// URI returns the namespace bound to prefix.
func (ns Namespaces) URI(prefix string) string {
	return ns[prefix]
}

// Selector is a compiled, namespace-aware XPath expression. It is safe for
// concurrent use.
type Selector struct {
	expr  *xpath.Expr
	union bool
}

// Compile compiles expr with the prefixes in ns. Unknown prefixes are
// reported as errors.
func Compile(expr string, ns Namespaces) (*Selector, error) {
	e, err := xpath.CompileWithNS(expr, ns)
	if err != nil {
		return nil, fmt.Errorf("markup: compile %q: %w", expr, err)
	}
	return &Selector{expr: e, union: strings.Contains(expr, "|")}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, ns Namespaces) *Selector {
	s, err := Compile(expr, ns)
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the source expression.
func (s *Selector) String() string {
	if s == nil {
		return ""
	}
	return s.expr.String()
}

// Select returns the nodes matched from top in document order. A nil
// selector matches nothing.
func (s *Selector) Select(top *xmlquery.Node) []*xmlquery.Node {
	if s == nil || top == nil {
		return nil
	}
	nodes := xmlquery.QuerySelectorAll(top, s.expr)
	if s.union && len(nodes) > 1 {
		// xpath yields the branches of a union one after the other
		nodes = documentOrder(top, nodes)
	}
	return nodes
}

// First returns the first node matched from top in document order, or nil.
func (s *Selector) First(top *xmlquery.Node) *xmlquery.Node {
	if s == nil || top == nil {
		return nil
	}
	if !s.union {
		return xmlquery.QuerySelector(top, s.expr)
	}
	nodes := s.Select(top)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func documentOrder(top *xmlquery.Node, nodes []*xmlquery.Node) []*xmlquery.Node {
	want := make(map[*xmlquery.Node]bool, len(nodes))
	for _, n := range nodes {
		want[n] = true
	}
	root := top
	for root.Parent != nil {
		root = root.Parent
	}

	out := make([]*xmlquery.Node, 0, len(nodes))
	var visit func(n *xmlquery.Node)
	visit = func(n *xmlquery.Node) {
		if want[n] {
			out = append(out, n)
			delete(want, n)
		}
		for c := n.FirstChild; c != nil && len(want) > 0; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)

	// attribute results are detached copies; they keep their relative order at the end
	for _, n := range nodes {
		if want[n] {
			out = append(out, n)
			delete(want, n)
		}
	}
	return out
}
