package markup

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html/charset"
)

// ErrNoRoot is returned when the input holds no element at all.
var ErrNoRoot = errors.New("markup: document has no root element")

// Parse builds a tree from data. Named HTML entities are accepted and
// non-UTF-8 encodings declared in the XML header are decoded.
func Parse(data []byte) (*xmlquery.Node, error) {
	doc, err := xmlquery.ParseWithOptions(bytes.NewReader(data), xmlquery.ParserOptions{
		Decoder: &xmlquery.DecoderOptions{
			Strict:        true,
			Entity:        xml.HTMLEntity,
			CharsetReader: charset.NewReaderLabel,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("markup: parse: %w", err)
	}
	if Root(doc) == nil {
		return nil, ErrNoRoot
	}
	return doc, nil
}

// Root returns the outermost element of doc.
func Root(doc *xmlquery.Node) *xmlquery.Node {
	if IsElement(doc) {
		return doc
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c) {
			return c
		}
	}
	return nil
}
