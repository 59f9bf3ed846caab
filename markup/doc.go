// Package markup is the XML reading layer shared by the article readers.
//
// It builds an xmlquery tree from raw bytes, exposes the text/tail view of
// that tree, compiles namespace-aware XPath selectors, removes decorative
// markup with a Cleaner and converts cleaned subtrees into model elements
// with a Converter.
package markup
