// Package config loads the elsxml command configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	yaml "gopkg.in/yaml.v3"

	"github.com/tsawler/elsxml/elsevier"
	"github.com/tsawler/elsxml/markup"
	"github.com/tsawler/elsxml/rag"
)

// Output formats accepted by the parse command.
const (
	FormatJSON     = "json"
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatChunks   = "chunks"
)

// ErrFormat is returned for an unknown output format.
var ErrFormat = errors.New("unknown output format")

// Config is the file configuration of the elsxml command. Fields left out of
// the file keep their defaults; a list given in the file replaces the
// default list.
type Config struct {
	Format         string             `yaml:"format"`
	URLPrefix      string             `yaml:"url_prefix"`
	ImageURLPrefix string             `yaml:"image_url_prefix"`
	Namespaces     map[string]string  `yaml:"namespaces"`
	Selectors      elsevier.Selectors `yaml:"selectors"`
	Chunks         Chunks             `yaml:"chunks"`
}

// Chunks configures the chunks output format.
type Chunks struct {
	MaxSize          int    `yaml:"max_size"`
	IncludeCitations bool   `yaml:"include_citations"`
	IDPrefix         string `yaml:"id_prefix"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Format:         FormatJSON,
		URLPrefix:      elsevier.DefaultURLPrefix,
		ImageURLPrefix: elsevier.DefaultImageURLPrefix,
		Selectors:      elsevier.DefaultSelectors(),
		Chunks: Chunks{
			MaxSize:          rag.DefaultChunkerConfig().MaxChunkSize,
			IncludeCitations: true,
			IDPrefix:         "chunk",
		},
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that are not checked by the reader itself.
func (c Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatText, FormatMarkdown, FormatHTML, FormatChunks:
		return nil
	default:
		return fmt.Errorf("%w %q", ErrFormat, c.Format)
	}
}

// ReaderOptions returns the reader options described by c.
func (c Config) ReaderOptions(log zerolog.Logger) []elsevier.Option {
	opts := []elsevier.Option{
		elsevier.WithLogger(log),
		elsevier.WithSelectors(c.Selectors),
		elsevier.WithURLPrefix(c.URLPrefix),
		elsevier.WithImageURLPrefix(c.ImageURLPrefix),
	}
	if len(c.Namespaces) > 0 {
		opts = append(opts, elsevier.WithNamespaces(markup.Namespaces(c.Namespaces)))
	}
	return opts
}

// ChunkerConfig returns the chunker configuration described by c.
func (c Config) ChunkerConfig() rag.ChunkerConfig {
	return rag.ChunkerConfig{
		MaxChunkSize:     c.Chunks.MaxSize,
		IncludeCitations: c.Chunks.IncludeCitations,
		IDPrefix:         c.Chunks.IDPrefix,
	}
}
