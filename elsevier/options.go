package elsevier

import (
	"github.com/rs/zerolog"

	"github.com/tsawler/elsxml/markup"
)

const (
	// DefaultURLPrefix is prepended to article identifiers to build the
	// PDF and HTML URLs.
	DefaultURLPrefix = "https://sciencedirect.com/science/article/pii/"

	// DefaultImageURLPrefix is prepended to "<pii>-<filename>" to build
	// figure image URLs.
	DefaultImageURLPrefix = "https://ars.els-cdn.com/content/image/1-s2.0-"
)

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Reader) {
		r.log = l
	}
}

// WithSelectors replaces the selector table.
func WithSelectors(s Selectors) Option {
	return func(r *Reader) {
		r.selectors = s
	}
}

// WithNamespaces adds or overrides selector prefixes.
func WithNamespaces(ns markup.Namespaces) Option {
	return func(r *Reader) {
		for k, v := range ns {
			r.ns[k] = v
		}
	}
}

// WithURLPrefix sets the prefix of the metadata PDF and HTML URLs.
func WithURLPrefix(prefix string) Option {
	return func(r *Reader) {
		r.urlPrefix = prefix
	}
}

// WithImageURLPrefix sets the prefix of figure image URLs.
func WithImageURLPrefix(prefix string) Option {
	return func(r *Reader) {
		r.imageURLPrefix = prefix
	}
}
