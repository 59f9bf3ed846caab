// Package rag splits parsed articles into retrieval chunks and exports them
// for embedding pipelines.
//
// # Chunking
//
// The [Chunker] walks a document in order and groups content by section:
//
//	chunker := rag.NewChunker()
//	result, err := chunker.Chunk(doc)
//
// A heading starts a new section. Tables and figures are never split; a
// paragraph larger than MaxChunkSize is split at sentence boundaries.
//
// # Chunk Metadata
//
// Each [Chunk] carries the article title and DOI, the section it came from,
// the element types and identifiers it contains, and the bibliography ids it
// cites.
//
// # Export Formats
//
// The [Exporter] writes chunks as JSON Lines, a JSON array, or CSV/TSV.
package rag
