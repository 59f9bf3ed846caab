package elsevier

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/antchfx/xmlquery"

	"github.com/tsawler/elsxml/markup"
)

// FixWhitespace removes every horizontal-space marker selected by hsp from
// the tree below root, in document order. The marker's text and tail are
// merged into the neighbouring text with a single separating space, and its
// children take its place. An empty marker between two elements leaves its
// space at the end of the text that precedes it.
func FixWhitespace(root *xmlquery.Node, hsp *markup.Selector) {
	for _, n := range hsp.Select(root) {
		if !markup.IsElement(n) || n.Parent == nil {
			continue
		}
		if markup.Text(n) == "" && markup.Tail(n) == "" && markup.Last(n) == nil {
			markJunction(n)
		}
		markup.Unwrap(n, spaceJoin)
	}
}

// markJunction separates the text before the empty marker n from the
// element that follows it. The space lands inside non-blank text so that
// CollapseWhitespace keeps it.
func markJunction(n *xmlquery.Node) {
	next := nextElement(n)
	if next == nil || startsWithSpace(leadingText(next)) {
		return
	}
	for prev := markup.Previous(n); prev != nil; prev = markup.Previous(prev) {
		if markup.IsElement(prev) && appendTrailing(prev) {
			return
		}
	}
	if t := markup.Text(n.Parent); t != "" && !endsWithSpace(t) {
		markup.SetText(n.Parent, t+" ")
	}
}

func nextElement(n *xmlquery.Node) *xmlquery.Node {
	for c := n.NextSibling; c != nil; c = c.NextSibling {
		if markup.IsElement(c) {
			return c
		}
	}
	return nil
}

// leadingText returns the first non-empty text inside n.
func leadingText(n *xmlquery.Node) string {
	if t := markup.Text(n); t != "" {
		return t
	}
	if kids := markup.Children(n); len(kids) > 0 {
		return leadingText(kids[0])
	}
	return ""
}

// appendTrailing adds a space to the last non-empty text that n ends with,
// counting its tail.
func appendTrailing(n *xmlquery.Node) bool {
	if t := markup.Tail(n); t != "" {
		if !endsWithSpace(t) {
			markup.SetTail(n, t+" ")
		}
		return true
	}
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if markup.IsElement(c) && appendTrailing(c) {
			return true
		}
	}
	if t := markup.Text(n); t != "" {
		if !endsWithSpace(t) {
			markup.SetText(n, t+" ")
		}
		return true
	}
	return false
}

// spaceJoin appends s to target, separated by one space unless target is
// empty, target already ends with whitespace or s starts with it.
func spaceJoin(target, s string) string {
	if target == "" || endsWithSpace(target) || startsWithSpace(s) {
		return target + s
	}
	return target + " " + s
}

func startsWithSpace(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}

func endsWithSpace(s string) bool {
	t := strings.TrimRightFunc(s, unicode.IsSpace)
	return len(t) < len(s)
}

// CollapseWhitespace clears text and tails that hold nothing but whitespace
// for root and every element below it.
func CollapseWhitespace(root *xmlquery.Node) {
	markup.Walk(root, func(n *xmlquery.Node) bool {
		if t := markup.Text(n); t != "" && isBlank(t) {
			markup.SetText(n, "")
		}
		if t := markup.Tail(n); t != "" && isBlank(t) {
			markup.SetTail(n, "")
		}
		return true
	})
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
