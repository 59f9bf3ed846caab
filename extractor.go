package elsxml

import (
	"fmt"
	"os"

	"github.com/tsawler/elsxml/elsevier"
	"github.com/tsawler/elsxml/format"
	"github.com/tsawler/elsxml/htmldoc"
	"github.com/tsawler/elsxml/model"
)

// Extractor provides a fluent interface for extracting content from
// articles. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	data     []byte
	loaded   bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// Open returns an Extractor for the file at filename. The file is read on
// the first terminal operation.
//
// Example:
//
//	text, err := elsxml.Open("article.xml").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns an Extractor over data already in memory. filename is
// used for detection only and may be empty.
func FromBytes(data []byte, filename string) *Extractor {
	return &Extractor{
		filename: filename,
		data:     data,
		loaded:   true,
		options:  defaultOptions(),
	}
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		data:     e.data,
		loaded:   e.loaded,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// WithOptions configures the Elsevier reader. Multiple calls are cumulative.
func (e *Extractor) WithOptions(opts ...elsevier.Option) *Extractor {
	newExt := e.clone()
	newExt.options.reader = append(newExt.options.reader, opts...)
	return newExt
}

// WithReaders adds readers that are tried, in order, before the Elsevier
// reader.
func (e *Extractor) WithReaders(readers ...Reader) *Extractor {
	newExt := e.clone()
	newExt.options.readers = append(newExt.options.readers, readers...)
	return newExt
}

// Format reports the detected format of the input.
func (e *Extractor) Format() (format.Format, error) {
	data, err := e.load()
	if err != nil {
		return format.Unknown, err
	}
	if f := format.DetectFromMagic(data); f != format.Unknown {
		return f, nil
	}
	return format.Detect(e.filename), nil
}

func (e *Extractor) load() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.loaded {
		return e.data, nil
	}
	if e.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	data, err := os.ReadFile(e.filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", e.filename, err)
	}
	return data, nil
}

// Document parses the input into a document.
func (e *Extractor) Document() (*model.Document, error) {
	data, err := e.load()
	if err != nil {
		return nil, err
	}
	els, err := elsevier.New(e.options.reader...)
	if err != nil {
		return nil, err
	}
	readers := append(append([]Reader(nil), e.options.readers...), els)
	return Read(data, e.filename, readers...)
}

// Text returns the plain text of the document.
func (e *Extractor) Text() (string, error) {
	doc, err := e.Document()
	if err != nil {
		return "", err
	}
	return doc.ExtractText(), nil
}

// ToMarkdown renders the document as markdown.
func (e *Extractor) ToMarkdown() (string, error) {
	doc, err := e.Document()
	if err != nil {
		return "", err
	}
	return doc.ToMarkdown(), nil
}

// ToHTML renders the document as HTML.
func (e *Extractor) ToHTML() (string, error) {
	doc, err := e.Document()
	if err != nil {
		return "", err
	}
	return htmldoc.String(doc)
}
