package rag

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tsawler/elsxml/model"
)

// ChunkLevel represents the granularity a chunk was cut at
type ChunkLevel int

const (
	// ChunkLevelSection is a whole section
	ChunkLevelSection ChunkLevel = iota
	// ChunkLevelParagraph is a run of elements from a section too large for one chunk
	ChunkLevelParagraph
	// ChunkLevelSentence is a run of sentences from an oversized paragraph
	ChunkLevelSentence
)

// String returns a human-readable representation of the chunk level
func (cl ChunkLevel) String() string {
	switch cl {
	case ChunkLevelSection:
		return "section"
	case ChunkLevelParagraph:
		return "paragraph"
	case ChunkLevelSentence:
		return "sentence"
	default:
		return "unknown"
	}
}

// MarshalText encodes the level by name.
func (cl ChunkLevel) MarshalText() ([]byte, error) {
	return []byte(cl.String()), nil
}

// ChunkMetadata describes where a chunk came from
type ChunkMetadata struct {
	// DocumentTitle is the title of the source article
	DocumentTitle string `json:"document_title,omitempty"`

	// DOI of the source article
	DOI string `json:"doi,omitempty"`

	// SectionPath is the path of headings leading to the chunk
	SectionPath []string `json:"section_path,omitempty"`

	// SectionTitle is the immediate section heading
	SectionTitle string `json:"section_title,omitempty"`

	// ChunkIndex is the position of this chunk in the document (0-indexed)
	ChunkIndex int `json:"chunk_index"`

	// TotalChunks is the total number of chunks in the document
	TotalChunks int `json:"total_chunks,omitempty"`

	// Level is the granularity of this chunk
	Level ChunkLevel `json:"level"`

	// ElementTypes lists the types of elements contained
	ElementTypes []string `json:"element_types,omitempty"`

	// ElementIDs lists the source identifiers of the elements contained
	ElementIDs []string `json:"element_ids,omitempty"`

	// References lists the bibliography ids cited from the chunk
	References []string `json:"references,omitempty"`

	HasTable bool `json:"has_table,omitempty"`
	HasImage bool `json:"has_image,omitempty"`

	CharCount int `json:"char_count"`
	WordCount int `json:"word_count"`

	// EstimatedTokens is an estimated token count (chars/4 as rough approximation)
	EstimatedTokens int `json:"estimated_tokens"`
}

// Chunk is a unit of article text prepared for retrieval
type Chunk struct {
	ID   string `json:"id"`
	Text string `json:"text"`

	// TextWithContext is the text with the section heading prepended
	TextWithContext string `json:"text_with_context,omitempty"`

	Metadata ChunkMetadata `json:"metadata"`
}

// NewChunk creates a new chunk with the given text and metadata
func NewChunk(id, text string, metadata ChunkMetadata) *Chunk {
	metadata.CharCount = len(text)
	metadata.WordCount = countWords(text)
	metadata.EstimatedTokens = len(text) / 4

	chunk := &Chunk{
		ID:       id,
		Text:     text,
		Metadata: metadata,
	}
	chunk.TextWithContext = chunk.contextualText()
	return chunk
}

func (c *Chunk) contextualText() string {
	if c.Metadata.SectionTitle == "" {
		return c.Text
	}
	return fmt.Sprintf("[%s]\n\n%s", c.Metadata.SectionTitle, c.Text)
}

// SectionPathString returns the section path joined with " > "
func (c *Chunk) SectionPathString() string {
	return strings.Join(c.Metadata.SectionPath, " > ")
}

// ChunkerConfig holds configuration options for the chunker
type ChunkerConfig struct {
	// MaxChunkSize is the soft limit for chunk size in characters. Tables
	// and figures larger than this still form a single chunk.
	// Default: 2000
	MaxChunkSize int

	// IncludeCitations keeps bibliography entries as chunk content.
	// Default: true
	IncludeCitations bool

	// IDPrefix is a prefix for generated chunk IDs
	// Default: "chunk"
	IDPrefix string
}

// DefaultChunkerConfig returns the default configuration
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		MaxChunkSize:     2000,
		IncludeCitations: true,
		IDPrefix:         "chunk",
	}
}

// Chunker splits documents into chunks
type Chunker struct {
	config ChunkerConfig
}

// NewChunker creates a new chunker with default configuration
func NewChunker() *Chunker {
	return &Chunker{config: DefaultChunkerConfig()}
}

// NewChunkerWithConfig creates a chunker with custom configuration
func NewChunkerWithConfig(config ChunkerConfig) *Chunker {
	if config.MaxChunkSize <= 0 {
		config.MaxChunkSize = DefaultChunkerConfig().MaxChunkSize
	}
	if config.IDPrefix == "" {
		config.IDPrefix = "chunk"
	}
	return &Chunker{config: config}
}

// ChunkResult contains the chunking output
type ChunkResult struct {
	// Chunks are the generated chunks in reading order
	Chunks []*Chunk

	DocumentTitle string
	Stats         ChunkStats
}

// ChunkStats contains statistics about the chunking process
type ChunkStats struct {
	TotalChunks     int
	TotalCharacters int
	TotalWords      int
	TotalTokensEst  int
	AvgChunkSize    int
	MinChunkSize    int
	MaxChunkSize    int
	SectionChunks   int
	ParagraphChunks int
	SentenceChunks  int
}

// section is a heading and the content that follows it
type section struct {
	title   string
	path    []string
	content []contentElement
}

type contentElement struct {
	kind   model.ElementType
	text   string
	id     string
	refs   []string
	atomic bool
}

// Chunk splits doc into chunks in reading order.
func (c *Chunker) Chunk(doc *model.Document) (*ChunkResult, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}

	title, doi := documentInfo(doc)
	result := &ChunkResult{DocumentTitle: title}

	index := 0
	for _, s := range c.sections(doc) {
		result.Chunks = append(result.Chunks, c.chunkSection(s, &index, title, doi)...)
	}

	result.Stats = calculateStats(result.Chunks)
	for _, chunk := range result.Chunks {
		chunk.Metadata.TotalChunks = len(result.Chunks)
	}
	return result, nil
}

// documentInfo returns the article title and DOI, preferring the title
// element over the metadata title.
func documentInfo(doc *model.Document) (title, doi string) {
	if titles := doc.Titles(); len(titles) > 0 {
		title = titles[0].Text
	}
	if meta := doc.Metadata(); meta != nil {
		if title == "" && meta.Title != nil {
			title = *meta.Title
		}
		if meta.DOI != nil {
			doi = *meta.DOI
		}
	}
	return title, doi
}

// sections groups the elements of doc under their preceding heading.
// Content before the first heading forms an untitled section.
func (c *Chunker) sections(doc *model.Document) []*section {
	current := &section{}
	sections := []*section{current}

	for _, el := range doc.Elements {
		switch e := el.(type) {
		case *model.Title, *model.MetaData:
			continue
		case *model.Heading:
			current = &section{title: e.Text, path: []string{e.Text}}
			sections = append(sections, current)
		case *model.Table:
			current.content = append(current.content, contentElement{
				kind:   model.ElementTypeTable,
				text:   tableText(e),
				id:     e.ID,
				atomic: true,
			})
		case *model.Figure:
			text := e.GetText()
			if text == "" {
				continue
			}
			current.content = append(current.content, contentElement{
				kind:   model.ElementTypeFigure,
				text:   text,
				id:     e.ID,
				atomic: true,
			})
		case *model.Citation:
			if !c.config.IncludeCitations {
				continue
			}
			current.content = append(current.content, textContent(e))
		case model.TextElement:
			current.content = append(current.content, textContent(e))
		}
	}
	return sections
}

func textContent(e model.TextElement) contentElement {
	return contentElement{
		kind: e.Type(),
		text: e.GetText(),
		id:   e.GetID(),
		refs: e.GetReferences(),
	}
}

// tableText renders a table as its caption, a markdown grid and its
// footnotes.
func tableText(t *model.Table) string {
	var parts []string
	if t.Caption != nil && !t.Caption.IsEmpty() {
		parts = append(parts, t.Caption.Text)
	}
	if md := strings.TrimRight(t.ToMarkdown(), "\n"); md != "" {
		parts = append(parts, md)
	}
	for _, fn := range t.Footnotes {
		parts = append(parts, fn.Text)
	}
	return strings.Join(parts, "\n\n")
}

// chunkSection emits the section as one chunk when it fits, otherwise as
// runs of whole elements, splitting oversized paragraphs by sentence.
func (c *Chunker) chunkSection(s *section, index *int, title, doi string) []*Chunk {
	var chunks []*Chunk
	var pending []contentElement
	size := 0

	level := ChunkLevelSection
	if sectionSize(s) > c.config.MaxChunkSize {
		level = ChunkLevelParagraph
	}

	flush := func() {
		if len(pending) == 0 {
			return
		}
		chunks = append(chunks, c.createChunk(pending, s, *index, title, doi, level))
		*index++
		pending = nil
		size = 0
	}

	for _, elem := range s.content {
		if strings.TrimSpace(elem.text) == "" {
			continue
		}
		added := len(elem.text)
		if len(pending) > 0 {
			added += 2
		}
		if size+added > c.config.MaxChunkSize {
			flush()
		}

		if !elem.atomic && len(elem.text) > c.config.MaxChunkSize {
			for _, text := range c.splitBySentences(elem.text) {
				part := elem
				part.text = text
				chunks = append(chunks, c.createChunk([]contentElement{part}, s, *index, title, doi, ChunkLevelSentence))
				*index++
			}
			continue
		}

		pending = append(pending, elem)
		size += added
	}
	flush()
	return chunks
}

func sectionSize(s *section) int {
	n := 0
	for i, elem := range s.content {
		if i > 0 {
			n += 2
		}
		n += len(elem.text)
	}
	return n
}

// splitBySentences groups sentences into runs no larger than MaxChunkSize.
// A single sentence larger than the limit stays whole.
func (c *Chunker) splitBySentences(text string) []string {
	var out []string
	var current strings.Builder
	for _, sentence := range splitIntoSentences(text) {
		added := len(sentence)
		if current.Len() > 0 {
			added++
		}
		if current.Len()+added > c.config.MaxChunkSize && current.Len() > 0 {
			out = append(out, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

func (c *Chunker) createChunk(elems []contentElement, s *section, index int, title, doi string, level ChunkLevel) *Chunk {
	meta := ChunkMetadata{
		DocumentTitle: title,
		DOI:           doi,
		SectionPath:   s.path,
		SectionTitle:  s.title,
		ChunkIndex:    index,
		Level:         level,
	}

	texts := make([]string, 0, len(elems))
	for _, elem := range elems {
		texts = append(texts, elem.text)
		meta.ElementTypes = appendUnique(meta.ElementTypes, elem.kind.String())
		if elem.id != "" {
			meta.ElementIDs = append(meta.ElementIDs, elem.id)
		}
		for _, ref := range elem.refs {
			meta.References = appendUnique(meta.References, ref)
		}
		switch elem.kind {
		case model.ElementTypeTable:
			meta.HasTable = true
		case model.ElementTypeFigure:
			meta.HasImage = true
		}
	}

	id := fmt.Sprintf("%s_%d", c.config.IDPrefix, index)
	return NewChunk(id, strings.Join(texts, "\n\n"), meta)
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

// calculateStats computes statistics about the chunks
func calculateStats(chunks []*Chunk) ChunkStats {
	stats := ChunkStats{
		TotalChunks:  len(chunks),
		MinChunkSize: -1,
	}

	for _, chunk := range chunks {
		stats.TotalCharacters += chunk.Metadata.CharCount
		stats.TotalWords += chunk.Metadata.WordCount
		stats.TotalTokensEst += chunk.Metadata.EstimatedTokens

		if stats.MinChunkSize < 0 || chunk.Metadata.CharCount < stats.MinChunkSize {
			stats.MinChunkSize = chunk.Metadata.CharCount
		}
		if chunk.Metadata.CharCount > stats.MaxChunkSize {
			stats.MaxChunkSize = chunk.Metadata.CharCount
		}

		switch chunk.Metadata.Level {
		case ChunkLevelSection:
			stats.SectionChunks++
		case ChunkLevelParagraph:
			stats.ParagraphChunks++
		case ChunkLevelSentence:
			stats.SentenceChunks++
		}
	}

	if len(chunks) > 0 {
		stats.AvgChunkSize = stats.TotalCharacters / len(chunks)
	}
	if stats.MinChunkSize < 0 {
		stats.MinChunkSize = 0
	}
	return stats
}

// countWords counts the number of words in text
func countWords(text string) int {
	words := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			words++
		}
	}
	return words
}

// splitIntoSentences splits text after ., ! or ? when followed by
// whitespace and an upper-case letter or digit. Initials such as "J. Smith"
// do not end a sentence.
func splitIntoSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) {
			continue
		}
		if next := runes[j]; !unicode.IsUpper(next) && !unicode.IsDigit(next) {
			continue
		}
		// single capital initial
		if r == '.' && i >= 1 && unicode.IsUpper(runes[i-1]) && (i == 1 || unicode.IsSpace(runes[i-2])) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = j
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
