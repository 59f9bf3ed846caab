package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/elsxml/elsevier"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "elsxml.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, elsevier.DefaultURLPrefix, cfg.URLPrefix)
	assert.Equal(t, elsevier.DefaultSelectors(), cfg.Selectors)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 2000, cfg.ChunkerConfig().MaxChunkSize)
	assert.True(t, cfg.ChunkerConfig().IncludeCitations)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := writeFile(t, `
format: markdown
chunks:
  max_size: 500
url_prefix: https://example.org/pii/
namespaces:
  x: urn:example
selectors:
  heading: .//ce:section-title | .//ce:title
  kill:
    - .//ce:cross-ref
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	def := elsevier.DefaultSelectors()
	assert.Equal(t, FormatMarkdown, cfg.Format)
	assert.Equal(t, "https://example.org/pii/", cfg.URLPrefix)
	assert.Equal(t, elsevier.DefaultImageURLPrefix, cfg.ImageURLPrefix)
	assert.Equal(t, map[string]string{"x": "urn:example"}, cfg.Namespaces)
	assert.Equal(t, ".//ce:section-title | .//ce:title", cfg.Selectors.Heading)
	assert.Equal(t, []string{".//ce:cross-ref"}, cfg.Selectors.Kill)
	assert.Equal(t, def.Table, cfg.Selectors.Table)
	assert.Equal(t, def.Ignore, cfg.Selectors.Ignore)
	assert.Equal(t, 500, cfg.Chunks.MaxSize)
	assert.Equal(t, "chunk", cfg.Chunks.IDPrefix)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Load(writeFile(t, "format: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "format: pdf"))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestReaderOptions(t *testing.T) {
	cfg := Default()
	cfg.Namespaces = map[string]string{"x": "urn:example"}
	cfg.Selectors.Heading = ".//x:heading"

	opts := cfg.ReaderOptions(zerolog.Nop())
	assert.Len(t, opts, 5)

	_, err := elsevier.New(opts...)
	assert.NoError(t, err)

	cfg.Namespaces = nil
	_, err = elsevier.New(cfg.ReaderOptions(zerolog.Nop())...)
	assert.Error(t, err, "unknown prefix should fail to compile")
}
