// Package elsxml reads publisher full-text XML articles into a generic
// document model.
//
// Basic usage:
//
//	doc, err := elsxml.Open("article.xml").Document()
//	if err != nil {
//	    // handle error
//	}
//	for _, t := range doc.Tables() {
//	    fmt.Println(t.ToMarkdown())
//	}
//
// With options:
//
//	md, err := elsxml.Open("article.xml").
//	    WithOptions(elsevier.WithURLPrefix("https://example.org/pii/")).
//	    ToMarkdown()
//
// Readers for other schemas can be added with WithReaders; the first reader
// whose Detect accepts the input parses it.
package elsxml

import (
	"errors"
	"fmt"
	"os"

	"github.com/tsawler/elsxml/elsevier"
	"github.com/tsawler/elsxml/model"
)

// ErrNoReader is returned when no reader accepts the input.
var ErrNoReader = errors.New("elsxml: no reader accepts the input")

// Reader is implemented by every article reader.
type Reader interface {
	// Detect reports whether the reader understands data. filename may be
	// empty.
	Detect(data []byte, filename string) bool

	// Parse converts data into a document.
	Parse(data []byte) (*model.Document, error)
}

// Read parses data with the first reader that detects it.
func Read(data []byte, filename string, readers ...Reader) (*model.Document, error) {
	for _, r := range readers {
		if r.Detect(data, filename) {
			return r.Parse(data)
		}
	}
	if filename != "" {
		return nil, fmt.Errorf("%w: %s", ErrNoReader, filename)
	}
	return nil, ErrNoReader
}

// ReadFile reads the file at path and parses it with an Elsevier reader
// configured by opts.
func ReadFile(path string, opts ...elsevier.Option) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	r, err := elsevier.New(opts...)
	if err != nil {
		return nil, err
	}
	return Read(data, path, r)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := elsxml.Must(elsxml.Open("article.xml").Document())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
