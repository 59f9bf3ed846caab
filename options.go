package elsxml

import "github.com/tsawler/elsxml/elsevier"

// ExtractOptions holds configuration for extraction.
type ExtractOptions struct {
	// Options passed to the Elsevier reader
	reader []elsevier.Option

	// Readers tried before the Elsevier reader
	readers []Reader
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		reader:  append([]elsevier.Option(nil), o.reader...),
		readers: append([]Reader(nil), o.readers...),
	}
}
