package rag

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExportFormat defines the available export formats
type ExportFormat int

const (
	// ExportFormatJSONL exports as JSON Lines (one JSON object per line)
	ExportFormatJSONL ExportFormat = iota
	// ExportFormatJSON exports as a JSON array
	ExportFormatJSON
	// ExportFormatCSV exports as comma-separated values
	ExportFormatCSV
	// ExportFormatTSV exports as tab-separated values
	ExportFormatTSV
)

// String returns a human-readable representation of the export format
func (ef ExportFormat) String() string {
	switch ef {
	case ExportFormatJSONL:
		return "jsonl"
	case ExportFormatJSON:
		return "json"
	case ExportFormatCSV:
		return "csv"
	case ExportFormatTSV:
		return "tsv"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (ef ExportFormat) FileExtension() string {
	switch ef {
	case ExportFormatJSONL:
		return ".jsonl"
	case ExportFormatJSON:
		return ".json"
	case ExportFormatCSV:
		return ".csv"
	case ExportFormatTSV:
		return ".tsv"
	default:
		return ".txt"
	}
}

// ExportConfig holds configuration options for export
type ExportConfig struct {
	Format ExportFormat

	// IncludeMetadata adds the chunk metadata to JSON output
	IncludeMetadata bool

	// UseContext exports TextWithContext instead of Text
	UseContext bool

	// IncludeHeader includes header row in CSV/TSV exports
	IncludeHeader bool

	// PrettyPrint enables pretty printing for JSON formats
	PrettyPrint bool
}

// DefaultExportConfig returns the default export configuration
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Format:          ExportFormatJSONL,
		IncludeMetadata: true,
		IncludeHeader:   true,
	}
}

// Exporter writes chunks in one of the export formats
type Exporter struct {
	config ExportConfig
}

// NewExporter creates a new exporter with default configuration
func NewExporter() *Exporter {
	return &Exporter{config: DefaultExportConfig()}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config ExportConfig) *Exporter {
	return &Exporter{config: config}
}

// ExportedChunk is the serialized form of a chunk
type ExportedChunk struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Metadata *ChunkMetadata `json:"metadata,omitempty"`
}

// Export writes chunks to w
func (e *Exporter) Export(chunks []*Chunk, w io.Writer) error {
	switch e.config.Format {
	case ExportFormatJSONL:
		return e.exportJSONL(chunks, w)
	case ExportFormatJSON:
		return e.exportJSON(chunks, w)
	case ExportFormatCSV:
		return e.exportCSV(chunks, w, ',')
	case ExportFormatTSV:
		return e.exportCSV(chunks, w, '\t')
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// ExportToString exports chunks to a string
func (e *Exporter) ExportToString(chunks []*Chunk) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(chunks, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Exporter) prepare(chunk *Chunk) ExportedChunk {
	exported := ExportedChunk{ID: chunk.ID, Text: chunk.Text}
	if e.config.UseContext {
		exported.Text = chunk.TextWithContext
	}
	if e.config.IncludeMetadata {
		meta := chunk.Metadata
		exported.Metadata = &meta
	}
	return exported
}

func (e *Exporter) encoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	if e.config.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	return enc
}

func (e *Exporter) exportJSONL(chunks []*Chunk, w io.Writer) error {
	enc := e.encoder(w)
	for i, chunk := range chunks {
		if err := enc.Encode(e.prepare(chunk)); err != nil {
			return fmt.Errorf("encoding chunk %d: %w", i, err)
		}
	}
	return nil
}

func (e *Exporter) exportJSON(chunks []*Chunk, w io.Writer) error {
	exported := make([]ExportedChunk, len(chunks))
	for i, chunk := range chunks {
		exported[i] = e.prepare(chunk)
	}
	return e.encoder(w).Encode(exported)
}

var csvColumns = []string{"id", "text", "document_title", "doi", "section", "chunk_index", "level", "element_types", "references"}

// exportCSV writes one row per chunk with list fields joined by ";".
func (e *Exporter) exportCSV(chunks []*Chunk, w io.Writer, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	if e.config.IncludeHeader {
		if err := cw.Write(csvColumns); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}
	for i, chunk := range chunks {
		ex := e.prepare(chunk)
		m := chunk.Metadata
		row := []string{
			ex.ID,
			ex.Text,
			m.DocumentTitle,
			m.DOI,
			chunk.SectionPathString(),
			strconv.Itoa(m.ChunkIndex),
			m.Level.String(),
			strings.Join(m.ElementTypes, ";"),
			strings.Join(m.References, ";"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing chunk %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
